package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

func TestPennTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"negation", "I can't believe it.", []string{"I", "ca", "n&apos;t", "believe", "it", "."}},
		{"double quotes", `She said "yes".`, []string{"She", "said", "``", "yes", "&apos;&apos;", "."}},
		{"fused form and brackets", "Gonna go (now).", []string{"Gon", "na", "go", "-LRB-", "now", "-RRB-", "."}},
		{"title keeps period", "Mr. Smith arrived.", []string{"Mr.", "Smith", "arrived", "."}},
		{"contractions and comma", "I'm here, he's 5.", []string{"I", "&apos;m", "here", ",", "he", "&apos;s", "5", "."}},
		{"slash", "a/b", []string{"a", "@/@", "b"}},
		{"ellipsis", "Wait... really?", []string{"Wait", "...", "really", "?"}},
		{"symbols", "$5 & 10%", []string{"$", "5", "&amp;", "10", "%"}},
		{"cannot", "I cannot go", []string{"I", "can", "not", "go"}},
		{"square brackets", "[x]", []string{"-LSB-", "x", "-RSB-"}},
		{"digit comma kept", "1,000 people", []string{"1,000", "people"}},
		{"numeric-only prefix before number", "See No. 5 now", []string{"See", "No.", "5", "now"}},
		{"lowercase continuation", "It was ca. three", []string{"It", "was", "ca.", "three"}},
		{"dotted acronym", "in the U.S. Army", []string{"in", "the", "U.S.", "Army"}},
	}

	tok := newTestTokenizer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.PennTokenize(tt.text, "en")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPennTokenizeEmptyAndUnsupported(t *testing.T) {
	tok := newTestTokenizer(t)

	got, err := tok.PennTokenize("  \n ", "en")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = tok.PennTokenize("x", "xx")
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)
}

func TestKeepNonbreakingPeriods(t *testing.T) {
	p, err := lang.BuildProfile("en", []lang.Prefix{
		{Word: "Mr"},
		{Word: "No", NumericOnly: true},
	}, lang.StrategyEnglishClitic, true)
	require.NoError(t, err)

	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"Mr.", "Smith"}, "Mr. Smith"},
		{[]string{"No.", "5"}, "No. 5"},
		{[]string{"No.", "Way"}, "No . Way"},
		{[]string{"end."}, "end ."},
		{[]string{"end.", "and"}, "end. and"},
		{[]string{"a.b.", "X"}, "a.b. X"},
		{[]string{"."}, "."},
		{[]string{"5.", "X"}, "5 . X"},
	}
	for _, tt := range tests {
		if got := keepNonbreakingPeriods(tt.in, p); got != tt.want {
			t.Errorf("keepNonbreakingPeriods(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
