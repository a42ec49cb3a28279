package lang

import (
	"fmt"
	"slices"
)

var knownCodes = map[string]struct{}{
	"as": {}, "bn": {}, "ca": {}, "cjk": {}, "cs": {}, "cz": {}, "de": {}, "el": {},
	"en": {}, "es": {}, "et": {}, "fi": {}, "fr": {}, "ga": {}, "gu": {}, "hi": {},
	"hu": {}, "is": {}, "it": {}, "ja": {}, "kn": {}, "ko": {}, "lt": {}, "lv": {},
	"ml": {}, "mni": {}, "mr": {}, "nl": {}, "or": {}, "pa": {}, "pl": {}, "pt": {},
	"ro": {}, "ru": {}, "sk": {}, "sl": {}, "sv": {}, "ta": {}, "te": {}, "yue": {},
	"zh": {},
}

// IsKnown reports whether code names a language the tokenizer recognizes.
// The check is case-insensitive.
func IsKnown(code string) bool {
	_, ok := knownCodes[normalizeCode(code)]
	return ok
}

// KnownCodes returns the sorted set of recognized language codes.
func KnownCodes() []string {
	codes := make([]string, 0, len(knownCodes))
	for c := range knownCodes {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// DefaultStrategy returns the apostrophe strategy used for code when a rule
// table does not name one.
func DefaultStrategy(code string) Strategy {
	switch normalizeCode(code) {
	case "en":
		return StrategyEnglishClitic
	case "fr", "it":
		return StrategyRomanceElision
	default:
		return StrategyGeneric
	}
}

// Registry is a read-only set of profiles keyed by language code.
type Registry struct {
	profiles map[string]*Profile
	codes    []string
}

// NewRegistry indexes profiles by code. Two profiles with the same code are
// rejected with ErrInvalidRuleTable.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		if _, dup := r.profiles[p.code]; dup {
			return nil, fmt.Errorf("%w: duplicate profile for %q", ErrInvalidRuleTable, p.code)
		}
		r.profiles[p.code] = p
		r.codes = append(r.codes, p.code)
	}
	slices.Sort(r.codes)
	return r, nil
}

// Lookup returns the profile for code, or ErrUnsupportedLanguage.
func (r *Registry) Lookup(code string) (*Profile, error) {
	p, ok := r.profiles[normalizeCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return p, nil
}

// Codes returns the sorted language codes held by the registry.
func (r *Registry) Codes() []string {
	return append([]string(nil), r.codes...)
}

// Len returns the number of profiles.
func (r *Registry) Len() int { return len(r.profiles) }

// WithHyphenSplitting returns a registry whose profiles all use the given
// hyphen policy. The receiver is left untouched.
func (r *Registry) WithHyphenSplitting(on bool) *Registry {
	out := &Registry{
		profiles: make(map[string]*Profile, len(r.profiles)),
		codes:    r.Codes(),
	}
	for code, p := range r.profiles {
		out.profiles[code] = p.WithHyphenSplitting(on)
	}
	return out
}
