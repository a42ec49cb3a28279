package moses

import (
	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/text"
	"github.com/example/go-moses-tokenizer/internal/tokenizer"
)

// Errors.
var (
	// ErrUnsupportedLanguage is returned for a language code without a profile.
	ErrUnsupportedLanguage = lang.ErrUnsupportedLanguage
	// ErrInvalidRuleTable is returned for a malformed nonbreaking-prefix table.
	ErrInvalidRuleTable = lang.ErrInvalidRuleTable
	// ErrInvalidPattern is returned by New for a protected pattern that does not compile.
	ErrInvalidPattern = tokenizer.ErrInvalidPattern
)

// Language profiles

// Profile is the immutable rule set of one language.
type Profile = lang.Profile

// Prefix is one nonbreaking-prefix table entry.
type Prefix = lang.Prefix

// Registry holds language profiles keyed by code.
type Registry = lang.Registry

// Strategy selects how word-internal apostrophes are split.
type Strategy = lang.Strategy

// Apostrophe strategies.
const (
	StrategyGeneric        = lang.StrategyGeneric
	StrategyEnglishClitic  = lang.StrategyEnglishClitic
	StrategyRomanceElision = lang.StrategyRomanceElision
)

// BuildProfile validates prefixes and returns a profile for code.
func BuildProfile(code string, prefixes []Prefix, strategy Strategy, hyphenSplitting bool) (*Profile, error) {
	return lang.BuildProfile(code, prefixes, strategy, hyphenSplitting)
}

// NewRegistry returns a registry of the given profiles.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	return lang.NewRegistry(profiles...)
}

// Builtin returns the registry of embedded rule tables.
func Builtin() *Registry { return lang.Builtin() }

// LoadDir reads a directory of nonbreaking_prefix.<code> files and an
// optional languages.yaml manifest.
func LoadDir(dir string) (*Registry, error) { return lang.LoadDir(dir) }

// Languages returns every recognized language code.
func Languages() []string { return lang.KnownCodes() }

// Tokenizer

// Tokenizer tokenizes text for the languages of a Registry.
type Tokenizer = tokenizer.Tokenizer

// Option configures a Tokenizer.
type Option = tokenizer.Option

// ShieldedSpan is a protected region of the input.
type ShieldedSpan = tokenizer.ShieldedSpan

// New returns a Tokenizer over reg, or over Builtin() when reg is nil.
func New(reg *Registry, opts ...Option) (*Tokenizer, error) {
	return tokenizer.New(reg, opts...)
}

// WithFallback sets the profile used for unknown language codes.
func WithFallback(p *Profile) Option { return tokenizer.WithFallback(p) }

// WithProtectedPatterns keeps matches of Perl-syntax regular expressions whole.
func WithProtectedPatterns(patterns ...string) Option {
	return tokenizer.WithProtectedPatterns(patterns...)
}

// WithWebProtection keeps URLs, www hosts and e-mail addresses whole.
func WithWebProtection() Option { return tokenizer.WithWebProtection() }

// Escape replaces the reserved characters of a token with entities.
func Escape(tok string) string { return tokenizer.Escape(tok) }

// Tokenize tokenizes s with the built-in rules for code, escaping reserved
// characters.
func Tokenize(s, code string) ([]string, error) {
	tok, err := tokenizer.New(nil)
	if err != nil {
		return nil, err
	}
	return tok.Tokenize(s, code, true)
}

// Punctuation normalizer

// PunctOptions selects the punctuation normalizer stages.
type PunctOptions = text.PunctOptions

// PunctNormalizer rewrites punctuation to canonical forms.
type PunctNormalizer = text.PunctNormalizer

// DefaultPunctOptions returns the default normalizer stages.
func DefaultPunctOptions() PunctOptions { return text.DefaultPunctOptions() }

// NewPunctNormalizer returns a normalizer for the language code.
func NewPunctNormalizer(code string, opts PunctOptions) *PunctNormalizer {
	return text.NewPunctNormalizer(code, opts)
}
