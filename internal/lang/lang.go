// Package lang holds the per-language rule data consulted by the tokenizer:
// nonbreaking prefixes, the apostrophe strategy and the hyphen policy.
//
// A Profile is immutable once built and safe to share between goroutines.
// Profiles are grouped into a Registry keyed by language code; the built-in
// registry is constructed once per process from embedded Moses rule tables.
package lang

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/multierr"
)

var (
	// ErrUnsupportedLanguage is returned for language codes that have no profile.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidRuleTable is returned when profile construction input is malformed.
	ErrInvalidRuleTable = errors.New("invalid rule table")
)

// Strategy selects how word-internal apostrophes are split.
type Strategy int

const (
	// StrategyGeneric emits every apostrophe as its own token.
	StrategyGeneric Strategy = iota
	// StrategyEnglishClitic splits a letter-apostrophe-letter word into stem
	// and 'rest ("isn't" -> "isn", "'t"; "O'Neil" -> "O", "'Neil").
	StrategyEnglishClitic
	// StrategyRomanceElision keeps the apostrophe on the elided left word ("d'art" -> "d'", "art").
	StrategyRomanceElision
)

func (s Strategy) String() string {
	switch s {
	case StrategyGeneric:
		return "generic"
	case StrategyEnglishClitic:
		return "english_clitic"
	case StrategyRomanceElision:
		return "romance_elision"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool {
	return s >= StrategyGeneric && s <= StrategyRomanceElision
}

// ParseStrategy converts a case-insensitive strategy name to a Strategy.
// The short forms "english" and "romance" are accepted.
func ParseStrategy(raw string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "generic", "":
		return StrategyGeneric, nil
	case "english_clitic", "english":
		return StrategyEnglishClitic, nil
	case "romance_elision", "romance":
		return StrategyRomanceElision, nil
	default:
		return StrategyGeneric, fmt.Errorf("%w: unknown apostrophe strategy %q (want generic|english_clitic|romance_elision)",
			ErrInvalidRuleTable, raw)
	}
}

// Prefix is one nonbreaking-prefix entry. NumericOnly prefixes protect their
// period only when the following word is numeric ("No. 5").
type Prefix struct {
	Word        string
	NumericOnly bool
}

// Profile is the immutable rule set for one language.
type Profile struct {
	code     string
	prefixes []Prefix
	index    map[string]bool
	strategy Strategy
	hyphens  bool
}

// BuildProfile validates its input and returns a Profile. It fails with
// ErrUnsupportedLanguage for unknown codes and with ErrInvalidRuleTable for a
// malformed prefix list or strategy. Duplicate prefixes keep their first entry.
func BuildProfile(code string, prefixes []Prefix, strategy Strategy, hyphenSplitting bool) (*Profile, error) {
	code = normalizeCode(code)
	if !IsKnown(code) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %s: strategy %d out of range", ErrInvalidRuleTable, code, int(strategy))
	}

	p := &Profile{
		code:     code,
		prefixes: make([]Prefix, 0, len(prefixes)),
		index:    make(map[string]bool, len(prefixes)),
		strategy: strategy,
		hyphens:  hyphenSplitting,
	}

	var errs error
	for i, pr := range prefixes {
		if err := validatePrefix(pr.Word); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("prefix %d: %w", i+1, err))
			continue
		}
		if _, dup := p.index[pr.Word]; dup {
			continue
		}
		p.index[pr.Word] = pr.NumericOnly
		p.prefixes = append(p.prefixes, pr)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRuleTable, code, errs)
	}

	return p, nil
}

// Code returns the normalized language code.
func (p *Profile) Code() string { return p.code }

// IsNonbreakingPrefix reports whether word is a nonbreaking prefix and, if so,
// whether it only protects its period before a number. Matching is exact and
// case-sensitive, as in the Moses tables ("No" and "no" are different entries).
func (p *Profile) IsNonbreakingPrefix(word string) (numericOnly, ok bool) {
	numericOnly, ok = p.index[word]
	return numericOnly, ok
}

// ApostropheStrategy returns the language's apostrophe splitting strategy.
func (p *Profile) ApostropheStrategy() Strategy { return p.strategy }

// HyphenSplitting reports whether internal hyphens are split with the @-@ marker.
func (p *Profile) HyphenSplitting() bool { return p.hyphens }

// Prefixes returns a copy of the ordered prefix list.
func (p *Profile) Prefixes() []Prefix {
	return append([]Prefix(nil), p.prefixes...)
}

// WithHyphenSplitting returns a copy of p with the hyphen policy replaced.
// The receiver is left untouched.
func (p *Profile) WithHyphenSplitting(on bool) *Profile {
	cp := *p
	cp.hyphens = on
	return &cp
}

func validatePrefix(word string) error {
	switch {
	case word == "":
		return errors.New("empty prefix")
	case !utf8.ValidString(word):
		return fmt.Errorf("prefix %q is not valid UTF-8", word)
	case strings.HasSuffix(word, "."):
		return fmt.Errorf("prefix %q must not include its trailing period", word)
	case strings.IndexFunc(word, unicode.IsSpace) >= 0:
		return fmt.Errorf("prefix %q contains whitespace", word)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
