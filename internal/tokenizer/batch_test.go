package tokenizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

func TestTokenizeBatch(t *testing.T) {
	tok := newTestTokenizer(t)

	texts := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("Line %d isn't empty.", i)
	}

	for _, workers := range []int{-1, 0, 1, 4} {
		got, err := tok.TokenizeBatch(texts, "en", true, workers)
		require.NoError(t, err)
		require.Len(t, got, len(texts))

		for i, toks := range got {
			want := []string{"Line", fmt.Sprint(i), "isn", "&apos;t", "empty", "."}
			assert.Equal(t, want, toks, "workers=%d text %d", workers, i)
		}
	}
}

func TestTokenizeBatchEmptyAndErrors(t *testing.T) {
	tok := newTestTokenizer(t)

	got, err := tok.TokenizeBatch(nil, "en", true, 2)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = tok.TokenizeBatch([]string{"x"}, "xx", true, 2)
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)

	_, err = tok.PennTokenizeBatch([]string{"x"}, "xx", 2)
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)
}

func TestPennTokenizeBatch(t *testing.T) {
	tok := newTestTokenizer(t)

	got, err := tok.PennTokenizeBatch([]string{"I can't.", "", "(a)"}, "en", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"I", "ca", "n&apos;t", "."},
		{},
		{"-LRB-", "a", "-RRB-"},
	}, got)
}
