// Package bench provides benchmarking primitives for the mosestok bench command.
package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and volume of a single tokenization pass.
type RunResult struct {
	Index        int
	Cold         bool // true for the first run (cold-start)
	Duration     time.Duration
	Lines        int
	Bytes        int
	Tokens       int
	TokensPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	// MeanTokensPerSec is the mean throughput over the warm runs, or over
	// all runs when there is only one.
	MeanTokensPerSec float64
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// Summarize computes Stats over runs, including the mean throughput of the
// warm runs.
func Summarize(runs []RunResult) Stats {
	durations := make([]time.Duration, len(runs))
	for i, r := range runs {
		durations[i] = r.Duration
	}
	s := ComputeStats(durations)

	var sum float64
	n := 0
	for _, r := range runs {
		if r.Cold && len(runs) > 1 {
			continue
		}
		sum += r.TokensPerSec
		n++
	}
	if n > 0 {
		s.MeanTokensPerSec = sum / float64(n)
	}
	return s
}

// ---------------------------------------------------------------------------
// Measurement
// ---------------------------------------------------------------------------

// PassFunc tokenizes the benchmark corpus once and reports the number of
// tokens produced.
type PassFunc func() (tokens int, err error)

// Measure calls pass runs times and records each call. lines and bytes
// describe the corpus and are copied into every result.
func Measure(runs, lines, bytes int, pass PassFunc) ([]RunResult, error) {
	if runs < 1 {
		return nil, errors.New("runs must be >= 1")
	}

	results := make([]RunResult, 0, runs)
	for i := range runs {
		start := time.Now()
		tokens, err := pass()
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}

		results = append(results, RunResult{
			Index:        i,
			Cold:         i == 0,
			Duration:     elapsed,
			Lines:        lines,
			Bytes:        bytes,
			Tokens:       tokens,
			TokensPerSec: Throughput(tokens, elapsed),
		})
	}
	return results, nil
}

// Throughput returns tokens per second.
// Returns 0 if d is zero to avoid division by zero.
func Throughput(tokens int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(tokens) / d.Seconds()
}

// ---------------------------------------------------------------------------
// Throughput gate
// ---------------------------------------------------------------------------

// CheckMinThroughput returns an error if meanTPS < minimum.
// A minimum of 0 disables the gate.
func CheckMinThroughput(meanTPS, minimum float64) error {
	if minimum <= 0 {
		return nil
	}
	if meanTPS < minimum {
		return fmt.Errorf("mean throughput %.0f tokens/s is below minimum %.0f", meanTPS, minimum)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %10s  %12s\n", "Run", "Cold", "MS", "Lines", "Tokens", "Tokens/s")
	fmt.Fprintln(sb, strings.Repeat("-", 58))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %8d  %10d  %12.0f\n",
			r.Index+1,
			cold,
			ms(r.Duration),
			r.Lines,
			r.Tokens,
			r.TokensPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 58))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %10s  %12s  (min)\n", "", "", ms(stats.Min), "", "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %10s  %12.0f  (mean)\n", "", "", ms(stats.Mean), "", "", stats.MeanTokensPerSec)
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %8s  %10s  %12s  (max)\n", "", "", ms(stats.Max), "", "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index        int     `json:"index"`
	Cold         bool    `json:"cold"`
	DurationMS   float64 `json:"duration_ms"`
	Lines        int     `json:"lines"`
	Bytes        int     `json:"bytes"`
	Tokens       int     `json:"tokens"`
	TokensPerSec float64 `json:"tokens_per_sec"`
}

type jsonStats struct {
	MinMS            float64 `json:"min_ms"`
	MeanMS           float64 `json:"mean_ms"`
	MaxMS            float64 `json:"max_ms"`
	MeanTokensPerSec float64 `json:"mean_tokens_per_sec"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:            ms(stats.Min),
			MeanMS:           ms(stats.Mean),
			MaxMS:            ms(stats.Max),
			MeanTokensPerSec: stats.MeanTokensPerSec,
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:        r.Index,
			Cold:         r.Cold,
			DurationMS:   ms(r.Duration),
			Lines:        r.Lines,
			Bytes:        r.Bytes,
			Tokens:       r.Tokens,
			TokensPerSec: r.TokensPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
