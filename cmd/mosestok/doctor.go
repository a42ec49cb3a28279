package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/go-moses-tokenizer/internal/doctor"
	"github.com/example/go-moses-tokenizer/internal/server"
)

func newDoctorCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check rule tables and tokenizer configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "mode: %s\n", cfg.Tokenizer.Mode)

			result := doctor.Run(doctor.Config{
				Lang:         cfg.Tokenizer.Lang,
				FallbackLang: cfg.Tokenizer.FallbackLang,
				PrefixDir:    cfg.Tokenizer.PrefixDir,
				ProtectWeb:   cfg.Tokenizer.ProtectWeb,
				Patterns:     cfg.Tokenizer.ProtectedPatterns,
			}, w)

			// A running server is only checked when asked for.
			if addr != "" {
				if err := server.ProbeHTTP(addr); err != nil {
					result.AddFailure(fmt.Sprintf("server %s: %v", addr, err))
					_, _ = fmt.Fprintf(w, "%s server %s: %v\n", doctor.FailMark, addr, err)
				} else {
					_, _ = fmt.Fprintf(w, "%s server %s: ok\n", doctor.PassMark, addr)
				}
			}

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(w, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Also probe a running server at this address")

	return cmd
}
