// Package stageprof times the stages of a tokenization pass (punctuation
// normalization, tokenization, escaping) and labels them for CPU profiles.
package stageprof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/pprof"
	"time"

	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/text"
	"github.com/example/go-moses-tokenizer/internal/tokenizer"
)

// Options configures a profiling session.
type Options struct {
	Lines     []string
	Lang      string
	Normalize text.PunctOptions
	Runs      int
	Warmup    int
	// CPUProfile, when set, receives a pprof CPU profile of the profiled runs.
	CPUProfile io.Writer
}

type timings struct {
	normalize time.Duration
	tokenize  time.Duration
	escape    time.Duration
	total     time.Duration
	tokens    int
}

// Report holds per-stage mean durations over the profiled runs.
type Report struct {
	Lang      string
	Lines     int
	Runs      int
	Warmup    int
	Tokens    int
	Normalize time.Duration
	Tokenize  time.Duration
	Escape    time.Duration
	Total     time.Duration
}

// Run profiles tok over opts.Lines.
func Run(ctx context.Context, tok *tokenizer.Tokenizer, opts Options) (Report, error) {
	if opts.Runs < 1 {
		return Report{}, errors.New("runs must be >= 1")
	}
	if len(opts.Lines) == 0 {
		return Report{}, errors.New("no input lines")
	}

	p, err := tok.Profile(opts.Lang)
	if err != nil {
		return Report{}, err
	}
	norm := text.NewPunctNormalizer(p.Code(), opts.Normalize)

	for i := range opts.Warmup {
		if _, err := runOnce(ctx, tok, p, norm, opts.Lines); err != nil {
			return Report{}, fmt.Errorf("warmup run %d: %w", i+1, err)
		}
	}

	if opts.CPUProfile != nil {
		if err := pprof.StartCPUProfile(opts.CPUProfile); err != nil {
			return Report{}, fmt.Errorf("start cpuprofile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var agg timings
	for i := range opts.Runs {
		t, err := runOnce(ctx, tok, p, norm, opts.Lines)
		if err != nil {
			return Report{}, fmt.Errorf("profiled run %d: %w", i+1, err)
		}

		agg.normalize += t.normalize
		agg.tokenize += t.tokenize
		agg.escape += t.escape
		agg.total += t.total
		agg.tokens = t.tokens
	}

	n := time.Duration(opts.Runs)
	return Report{
		Lang:      p.Code(),
		Lines:     len(opts.Lines),
		Runs:      opts.Runs,
		Warmup:    opts.Warmup,
		Tokens:    agg.tokens,
		Normalize: agg.normalize / n,
		Tokenize:  agg.tokenize / n,
		Escape:    agg.escape / n,
		Total:     agg.total / n,
	}, nil
}

func runOnce(ctx context.Context, tok *tokenizer.Tokenizer, p *lang.Profile, norm *text.PunctNormalizer, lines []string) (timings, error) {
	var out timings
	startTotal := time.Now()

	normalized := make([]string, len(lines))
	pprof.Do(ctx, pprof.Labels("stage", "normalize"), func(context.Context) {
		start := time.Now()
		for i, l := range lines {
			normalized[i] = norm.Normalize(l)
		}
		out.normalize = time.Since(start)
	})

	tokens := make([][]string, len(lines))
	pprof.Do(ctx, pprof.Labels("stage", "tokenize"), func(context.Context) {
		start := time.Now()
		for i, l := range normalized {
			tokens[i] = tok.TokenizeProfile(l, p, false)
		}
		out.tokenize = time.Since(start)
	})

	pprof.Do(ctx, pprof.Labels("stage", "escape"), func(context.Context) {
		start := time.Now()
		for _, toks := range tokens {
			for j, s := range toks {
				toks[j] = tokenizer.Escape(s)
			}
			out.tokens += len(toks)
		}
		out.escape = time.Since(start)
	})

	if err := ctx.Err(); err != nil {
		return out, err
	}

	out.total = time.Since(startTotal)
	return out, nil
}

// Write prints the report as key: value lines.
func (r Report) Write(w io.Writer) {
	avg := func(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

	fmt.Fprintf(w, "lang: %s\n", r.Lang)
	fmt.Fprintf(w, "lines: %d\n", r.Lines)
	fmt.Fprintf(w, "runs: %d (warmup %d)\n", r.Runs, r.Warmup)
	fmt.Fprintf(w, "tokens: %d\n", r.Tokens)
	fmt.Fprintf(w, "avg_normalize_ms: %.3f\n", avg(r.Normalize))
	fmt.Fprintf(w, "avg_tokenize_ms: %.3f\n", avg(r.Tokenize))
	fmt.Fprintf(w, "avg_escape_ms: %.3f\n", avg(r.Escape))
	fmt.Fprintf(w, "avg_total_ms: %.3f\n", avg(r.Total))

	if r.Total > 0 {
		total := float64(r.Total)
		fmt.Fprintf(w, "share_normalize_pct: %.2f\n", 100*float64(r.Normalize)/total)
		fmt.Fprintf(w, "share_tokenize_pct: %.2f\n", 100*float64(r.Tokenize)/total)
		fmt.Fprintf(w, "share_escape_pct: %.2f\n", 100*float64(r.Escape)/total)
	}
}
