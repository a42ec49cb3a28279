package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-moses-tokenizer/internal/config"
	"github.com/example/go-moses-tokenizer/internal/server"
)

func newTokenizeCmd() *cobra.Command {
	var (
		text      string
		noEscape  bool
		penn      bool
		normalize bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Tokenize --text or each line of stdin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if format != "text" && format != "json" {
				return fmt.Errorf("--format must be 'text' or 'json'")
			}

			tok, err := newTokenizer(cfg.Tokenizer)
			if err != nil {
				return err
			}

			lines, err := readLines(text, cmd.InOrStdin())
			if err != nil {
				return err
			}

			code := cfg.Tokenizer.Lang
			if normalize {
				norm := server.NewPunctNormalizer(cfg.Normalizer)
				for i, l := range lines {
					if lines[i], err = norm.Normalize(l, code); err != nil {
						return err
					}
				}
			}

			var out [][]string
			if penn || cfg.Tokenizer.Mode == config.ModePenn {
				out, err = tok.PennTokenizeBatch(lines, code, cfg.Tokenizer.Workers)
			} else {
				escape := cfg.Tokenizer.Escape && !noEscape
				out, err = tok.TokenizeBatch(lines, code, escape, cfg.Tokenizer.Workers)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(w)
				for _, toks := range out {
					if err := enc.Encode(struct {
						Tokens []string `json:"tokens"`
					}{toks}); err != nil {
						return err
					}
				}
				return nil
			}

			for _, toks := range out {
				if _, err := fmt.Fprintln(w, strings.Join(toks, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (default: read lines from stdin)")
	cmd.Flags().BoolVar(&noEscape, "no-escape", false, "Do not replace reserved characters with entities")
	cmd.Flags().BoolVar(&penn, "penn", false, "Use Penn Treebank tokenization")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize punctuation before tokenizing")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")

	return cmd
}
