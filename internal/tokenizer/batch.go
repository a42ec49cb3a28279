package tokenizer

import (
	"github.com/sourcegraph/conc/iter"
)

// TokenizeBatch tokenizes every text with the rules for code, running up to
// workers calls in parallel (GOMAXPROCS when workers <= 0). The result is in
// input order. The language is resolved once, so the only error is
// lang.ErrUnsupportedLanguage.
func (t *Tokenizer) TokenizeBatch(texts []string, code string, escape bool, workers int) ([][]string, error) {
	p, err := t.Profile(code)
	if err != nil {
		return nil, err
	}

	if workers < 0 {
		workers = 0
	}
	mapper := iter.Mapper[string, []string]{MaxGoroutines: workers}

	return mapper.Map(texts, func(s *string) []string {
		return t.TokenizeProfile(*s, p, escape)
	}), nil
}

// PennTokenizeBatch is TokenizeBatch in Penn Treebank mode.
func (t *Tokenizer) PennTokenizeBatch(texts []string, code string, workers int) ([][]string, error) {
	p, err := t.Profile(code)
	if err != nil {
		return nil, err
	}

	if workers < 0 {
		workers = 0
	}
	mapper := iter.Mapper[string, []string]{MaxGoroutines: workers}

	return mapper.Map(texts, func(s *string) []string {
		return PennTokenizeProfile(*s, p)
	}), nil
}
