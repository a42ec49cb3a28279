package testutil

import (
	"encoding/json"
	"os"
	"slices"
	"testing"
)

// TokenCase is one entry of a tokenizer golden file.
type TokenCase struct {
	Name   string   `json:"name"`
	Lang   string   `json:"lang"`
	Text   string   `json:"text"`
	Escape *bool    `json:"escape,omitempty"`
	Penn   bool     `json:"penn,omitempty"`
	Tokens []string `json:"tokens"`
}

// EscapeOrDefault returns the case's escape flag, true when unset.
func (c TokenCase) EscapeOrDefault() bool {
	return c.Escape == nil || *c.Escape
}

// LoadTokenCases reads a JSON array of TokenCase from path, failing the test
// on any error or an empty file.
func LoadTokenCases(tb testing.TB, path string) []TokenCase {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read golden file: %v", err)
	}

	var cases []TokenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		tb.Fatalf("decode golden file %s: %v", path, err)
	}
	if len(cases) == 0 {
		tb.Fatalf("golden file %s has no cases", path)
	}

	return cases
}

// AssertTokens fails the test when got differs from want, reporting the
// first differing position.
func AssertTokens(tb testing.TB, got, want []string) {
	tb.Helper()

	if slices.Equal(got, want) {
		return
	}

	i := 0
	for i < len(got) && i < len(want) && got[i] == want[i] {
		i++
	}

	g, w := "<end>", "<end>"
	if i < len(got) {
		g = got[i]
	}
	if i < len(want) {
		w = want[i]
	}
	tb.Errorf("tokens differ at %d: got %q, want %q\n got: %q\nwant: %q", i, g, w, got, want)
}
