// Package doctor provides preflight checks of the rule tables and tokenizer
// configuration for mosestok.
package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/tokenizer"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// smokeText is tokenized with every configured language as a final check.
const smokeText = "Mr. Smith isn't here, e.g. at 3.14 p.m. today..."

// RegistryFunc loads a rule-table registry.
type RegistryFunc func() (*lang.Registry, error)

// Config holds the settings to verify and injectable loaders for each check.
type Config struct {
	// Lang is the default language code.
	Lang string
	// FallbackLang, when set, must resolve as well.
	FallbackLang string
	// PrefixDir, when set, replaces the built-in tables.
	PrefixDir string
	// ProtectWeb and Patterns configure protected patterns.
	ProtectWeb bool
	Patterns   []string
	// LoadBuiltin returns the embedded registry; lang.LoadBuiltin when nil.
	LoadBuiltin RegistryFunc
	// LoadDir reads PrefixDir; lang.LoadDir when nil.
	LoadDir func(dir string) (*lang.Registry, error)
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	loadBuiltin := cfg.LoadBuiltin
	if loadBuiltin == nil {
		loadBuiltin = lang.LoadBuiltin
	}
	loadDir := cfg.LoadDir
	if loadDir == nil {
		loadDir = lang.LoadDir
	}

	// ---- built-in rule tables ---------------------------------------------
	reg, err := loadBuiltin()
	if err != nil {
		res.fail(fmt.Sprintf("built-in rule tables: %v", err))
		fmt.Fprintf(w, "%s built-in rule tables: %v\n", FailMark, err)
	} else if missing := missingCodes(reg); len(missing) > 0 {
		res.fail(fmt.Sprintf("built-in rule tables: no profile for %s", strings.Join(missing, ", ")))
		fmt.Fprintf(w, "%s built-in rule tables: missing %s\n", FailMark, strings.Join(missing, ", "))
	} else {
		fmt.Fprintf(w, "%s built-in rule tables: %d languages, %d prefixes\n", PassMark, reg.Len(), prefixCount(reg))
	}

	// ---- prefix directory -------------------------------------------------
	if cfg.PrefixDir == "" {
		fmt.Fprintf(w, "%s prefix directory: not set (using built-in tables)\n", PassMark)
	} else {
		dirReg, err := loadDir(cfg.PrefixDir)
		if err != nil {
			res.fail(fmt.Sprintf("prefix directory %q: %v", cfg.PrefixDir, err))
			fmt.Fprintf(w, "%s prefix directory %s: %v\n", FailMark, cfg.PrefixDir, err)
		} else {
			fmt.Fprintf(w, "%s prefix directory %s: %d languages\n", PassMark, cfg.PrefixDir, dirReg.Len())
		}
		reg = dirReg
	}

	if reg == nil {
		return res
	}

	// ---- languages --------------------------------------------------------
	codes := []string{cfg.Lang}
	if cfg.FallbackLang != "" {
		codes = append(codes, cfg.FallbackLang)
	}
	for _, code := range codes {
		if p, err := reg.Lookup(code); err != nil {
			res.fail(fmt.Sprintf("language %q: %v", code, err))
			fmt.Fprintf(w, "%s language %q: %v\n", FailMark, code, err)
		} else {
			fmt.Fprintf(w, "%s language %s: %s, %d prefixes\n", PassMark, p.Code(), p.ApostropheStrategy(), len(p.Prefixes()))
		}
	}

	// ---- protected patterns -----------------------------------------------
	var opts []tokenizer.Option
	if cfg.ProtectWeb {
		opts = append(opts, tokenizer.WithWebProtection())
	}
	opts = append(opts, tokenizer.WithProtectedPatterns(cfg.Patterns...))

	tok, err := tokenizer.New(reg, opts...)
	if err != nil {
		res.fail(fmt.Sprintf("protected patterns: %v", err))
		fmt.Fprintf(w, "%s protected patterns: %v\n", FailMark, err)
		return res
	}
	fmt.Fprintf(w, "%s protected patterns: %d compiled\n", PassMark, len(cfg.Patterns))

	// ---- smoke test -------------------------------------------------------
	for _, code := range codes {
		toks, err := tok.Tokenize(smokeText, code, true)
		if err != nil {
			continue // already reported above
		}
		if len(toks) == 0 {
			res.fail(fmt.Sprintf("tokenize %q: no tokens", code))
			fmt.Fprintf(w, "%s tokenize %s: no tokens\n", FailMark, code)
			continue
		}
		fmt.Fprintf(w, "%s tokenize %s: %d tokens\n", PassMark, code, len(toks))
	}

	return res
}

// missingCodes returns the known language codes reg has no profile for.
func missingCodes(reg *lang.Registry) []string {
	have := make(map[string]bool, reg.Len())
	for _, c := range reg.Codes() {
		have[c] = true
	}

	var missing []string
	for _, c := range lang.KnownCodes() {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

func prefixCount(reg *lang.Registry) int {
	n := 0
	for _, c := range reg.Codes() {
		p, err := reg.Lookup(c)
		if err == nil {
			n += len(p.Prefixes())
		}
	}
	return n
}
