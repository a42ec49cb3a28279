package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their rule tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			reg, err := loadRegistry(cfg.Tokenizer)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tSTRATEGY\tPREFIXES\tHYPHENS")
			for _, code := range reg.Codes() {
				p, err := reg.Lookup(code)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", p.Code(), p.ApostropheStrategy(), len(p.Prefixes()), p.HyphenSplitting())
			}
			return tw.Flush()
		},
	}
}
