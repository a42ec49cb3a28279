package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-moses-tokenizer/internal/bench"
	"github.com/example/go-moses-tokenizer/internal/bench/stageprof"
	"github.com/example/go-moses-tokenizer/internal/server"
	mtext "github.com/example/go-moses-tokenizer/internal/text"
	"github.com/example/go-moses-tokenizer/internal/tokenizer"
)

func newBenchCmd() *cobra.Command {
	var (
		text          string
		input         string
		repeat        int
		runs          int
		format        string
		minThroughput float64
		stages        bool
		warmup        int
		cpuProfile    string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark tokenization throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" && input == "" {
				return fmt.Errorf("--text or --input is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			lines, err := benchCorpus(text, input, repeat)
			if err != nil {
				return err
			}

			tok, err := newTokenizer(cfg.Tokenizer)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			if stages {
				opts := stageprof.Options{
					Lines:     lines,
					Lang:      cfg.Tokenizer.Lang,
					Normalize: server.PunctOptions(cfg.Normalizer),
					Runs:      runs,
					Warmup:    warmup,
				}
				if cpuProfile != "" {
					f, err := os.Create(cpuProfile)
					if err != nil {
						return fmt.Errorf("create cpuprofile: %w", err)
					}
					defer func() { _ = f.Close() }()
					opts.CPUProfile = f
				}

				report, err := stageprof.Run(cmd.Context(), tok, opts)
				if err != nil {
					return err
				}
				report.Write(w)
				return nil
			}

			results, err := runBench(tok, benchOptions{
				Lines:   lines,
				Lang:    cfg.Tokenizer.Lang,
				Escape:  cfg.Tokenizer.Escape,
				Workers: cfg.Tokenizer.Workers,
				Runs:    runs,
			})
			if err != nil {
				return err
			}
			stats := bench.Summarize(results)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, w)
			default:
				bench.FormatTable(results, stats, w)
			}

			return bench.CheckMinThroughput(stats.MeanTokensPerSec, minThroughput)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Line to tokenize on each run")
	cmd.Flags().StringVar(&input, "input", "", "File of lines to tokenize on each run (overrides --text)")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Repeat the corpus this many times per run")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of benchmark runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minThroughput, "min-throughput", 0, "Exit non-zero if mean tokens/s is below this value (0 = disabled)")
	cmd.Flags().BoolVar(&stages, "stages", false, "Report per-stage timings instead of throughput")
	cmd.Flags().IntVar(&warmup, "warmup", 1, "Warmup runs before --stages profiling")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile of the --stages runs to this file")

	return cmd
}

type benchOptions struct {
	Lines   []string
	Lang    string
	Escape  bool
	Workers int
	Runs    int
}

// benchCorpus returns the benchmark lines repeated repeat times.
func benchCorpus(text, input string, repeat int) ([]string, error) {
	var r io.Reader = strings.NewReader("")
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
		text = ""
	}

	raw, err := readLines(text, r)
	if err != nil {
		return nil, err
	}

	// Blank lines would only dilute the timings.
	base := raw[:0]
	for _, l := range raw {
		cleaned, err := mtext.Normalize(l)
		if errors.Is(err, mtext.ErrEmptyText) {
			continue
		}
		base = append(base, cleaned)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("bench corpus is empty")
	}

	lines := make([]string, 0, len(base)*repeat)
	for range repeat {
		lines = append(lines, base...)
	}
	return lines, nil
}

func runBench(tok *tokenizer.Tokenizer, opts benchOptions) ([]bench.RunResult, error) {
	size := 0
	for _, l := range opts.Lines {
		size += len(l)
	}

	return bench.Measure(opts.Runs, len(opts.Lines), size, func() (int, error) {
		out, err := tok.TokenizeBatch(opts.Lines, opts.Lang, opts.Escape, opts.Workers)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, toks := range out {
			n += len(toks)
		}
		return n, nil
	})
}
