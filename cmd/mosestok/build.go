package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/example/go-moses-tokenizer/internal/config"
	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/tokenizer"
)

// maxLineBytes bounds a single input line read from stdin or a file.
const maxLineBytes = 4 << 20

// loadRegistry returns the rule tables named by cfg: the prefix directory
// when set, else the built-in tables.
func loadRegistry(cfg config.TokenizerConfig) (*lang.Registry, error) {
	var (
		reg *lang.Registry
		err error
	)
	if cfg.PrefixDir != "" {
		reg, err = lang.LoadDir(cfg.PrefixDir)
	} else {
		reg, err = lang.LoadBuiltin()
	}
	if err != nil {
		return nil, err
	}

	// Hyphen splitting is on per profile unless disabled globally.
	if !cfg.HyphenSplitting {
		reg = reg.WithHyphenSplitting(false)
	}
	return reg, nil
}

// newTokenizer builds a Tokenizer from the tokenizer configuration.
func newTokenizer(cfg config.TokenizerConfig) (*tokenizer.Tokenizer, error) {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	var opts []tokenizer.Option
	if cfg.FallbackLang != "" {
		p, err := reg.Lookup(cfg.FallbackLang)
		if err != nil {
			return nil, fmt.Errorf("fallback language: %w", err)
		}
		opts = append(opts, tokenizer.WithFallback(p))
	}
	if cfg.ProtectWeb {
		opts = append(opts, tokenizer.WithWebProtection())
	}
	if len(cfg.ProtectedPatterns) > 0 {
		opts = append(opts, tokenizer.WithProtectedPatterns(cfg.ProtectedPatterns...))
	}

	return tokenizer.New(reg, opts...)
}

// readLines returns text as a single line when it is set, else every line
// of r.
func readLines(text string, r io.Reader) ([]string, error) {
	if text != "" {
		return []string{text}, nil
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
