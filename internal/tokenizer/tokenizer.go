// Package tokenizer implements Moses-style rule-based word tokenization.
//
// A call runs a fixed cascade over the cleaned input:
//
//  1. protect: acronyms, known abbreviations, numbers, ellipses and other
//     protected spans are shielded from splitting;
//  2. split: unshielded punctuation and symbols become tokens of their own,
//     and hyphens between alphanumerics become the @-@ marker;
//  3. resolve: word-internal apostrophes are split per the language's
//     strategy (English clitics, Romance elision, or generic);
//  4. restore and escape: shielded spans are put back and reserved
//     characters are optionally replaced with entities.
//
// A Tokenizer is immutable after New and safe for concurrent use. Each call
// owns its shielded-span table; language profiles are shared read-only.
package tokenizer

import (
	"strings"
	"time"

	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/text"
)

// Tokenizer tokenizes text for the languages of a lang.Registry.
type Tokenizer struct {
	registry     *lang.Registry
	fallback     *lang.Profile
	patterns     []string
	web          bool
	matchTimeout time.Duration
	matchers     []matcher
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithFallback sets the profile used for language codes the registry does
// not hold. Without it such codes fail with lang.ErrUnsupportedLanguage.
func WithFallback(p *lang.Profile) Option {
	return func(t *Tokenizer) {
		t.fallback = p
	}
}

// WithProtectedPatterns adds Perl-syntax regular expressions whose matches
// are kept as single tokens. Patterns are tried at word starts, in order,
// before every built-in category.
func WithProtectedPatterns(patterns ...string) Option {
	return func(t *Tokenizer) {
		t.patterns = append(t.patterns, patterns...)
	}
}

// WithWebProtection keeps URLs, www hosts and e-mail addresses whole.
func WithWebProtection() Option {
	return func(t *Tokenizer) {
		t.web = true
	}
}

// WithMatchTimeout bounds each protected-pattern match attempt. An attempt
// that runs out of time counts as no match, so output may then depend on
// machine load; without this option patterns run to completion and output
// is deterministic. Values <= 0 are ignored.
func WithMatchTimeout(d time.Duration) Option {
	return func(t *Tokenizer) {
		if d > 0 {
			t.matchTimeout = d
		}
	}
}

// New returns a Tokenizer over reg, or over the built-in registry when reg
// is nil. It fails with ErrInvalidPattern if a protected pattern does not
// compile.
func New(reg *lang.Registry, opts ...Option) (*Tokenizer, error) {
	if reg == nil {
		reg = lang.Builtin()
	}

	t := &Tokenizer{
		registry: reg,
	}
	for _, opt := range opts {
		opt(t)
	}

	var patterns []string
	if t.web {
		patterns = append(patterns, webPatterns...)
	}
	patterns = append(patterns, t.patterns...)

	for _, p := range patterns {
		m, err := compilePattern(p, t.matchTimeout)
		if err != nil {
			return nil, err
		}
		t.matchers = append(t.matchers, m)
	}
	t.matchers = append(t.matchers, builtinMatchers()...)

	return t, nil
}

// Profile returns the profile for code, falling back to the configured
// fallback profile. Lookup is case-insensitive.
func (t *Tokenizer) Profile(code string) (*lang.Profile, error) {
	p, err := t.registry.Lookup(code)
	if err != nil {
		if t.fallback != nil {
			return t.fallback, nil
		}
		return nil, err
	}
	return p, nil
}

// Languages returns the sorted language codes the tokenizer serves.
func (t *Tokenizer) Languages() []string {
	return t.registry.Codes()
}

// Tokenize splits text into tokens using the rules for language code. When
// escape is set, reserved characters in the tokens are replaced with
// entities (see Escape). Empty or whitespace-only text yields an empty,
// non-nil slice. The only error is lang.ErrUnsupportedLanguage.
func (t *Tokenizer) Tokenize(s, code string, escape bool) ([]string, error) {
	p, err := t.Profile(code)
	if err != nil {
		return nil, err
	}
	return t.TokenizeProfile(s, p, escape), nil
}

// TokenizeProfile is Tokenize with an explicit profile.
func (t *Tokenizer) TokenizeProfile(s string, p *lang.Profile, escape bool) []string {
	sc := &scan{text: []rune(text.Clean(s)), profile: p}
	if len(sc.text) == 0 {
		return []string{}
	}

	cells, spans := protect(sc, t.matchers)
	res := resolver{strategy: p.ApostropheStrategy()}

	words := split(cells, spans, p.HyphenSplitting())
	out := make([]string, 0, len(words))
	for _, w := range words {
		for _, piece := range res.resolve(w) {
			tok := restore(piece, spans)
			if escape {
				tok = Escape(tok)
			}
			out = append(out, tok)
		}
	}

	return out
}

// Shields returns the spans the protector would shield in s, in input order.
func (t *Tokenizer) Shields(s, code string) ([]ShieldedSpan, error) {
	p, err := t.Profile(code)
	if err != nil {
		return nil, err
	}

	sc := &scan{text: []rune(text.Clean(s)), profile: p}
	_, spans := protect(sc, t.matchers)
	return spans, nil
}

// restore renders a token, putting shielded spans back verbatim.
func restore(tok token, spans []ShieldedSpan) string {
	var b strings.Builder
	for _, c := range tok.cells {
		if c.isSpan() {
			b.WriteString(spans[c.span].Text)
			continue
		}
		b.WriteRune(c.r)
	}
	return b.String()
}
