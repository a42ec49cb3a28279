package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-moses-tokenizer/internal/server"
)

func newNormalizeCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize punctuation of --text or each line of stdin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			lines, err := readLines(text, cmd.InOrStdin())
			if err != nil {
				return err
			}

			norm := server.NewPunctNormalizer(cfg.Normalizer)
			for _, l := range lines {
				out, err := norm.Normalize(l, cfg.Tokenizer.Lang)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to normalize (default: read lines from stdin)")

	return cmd
}
