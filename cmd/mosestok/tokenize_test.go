package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

func TestTokenizeCmd(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"text flag", "", []string{"--text", "Hello, world!"}, "Hello , world !\n"},
		{"escaped by default", "", []string{"--text", "isn't"}, "isn &apos;t\n"},
		{"no escape", "", []string{"--text", "isn't", "--no-escape"}, "isn 't\n"},
		{"escape config off", "", []string{"--text", "isn't", "--escape=false"}, "isn 't\n"},
		{"stdin lines", "Mr. Smith left.\n\nI agree.\n", nil, "Mr. Smith left .\n\nI agree .\n"},
		{"penn flag", "", []string{"--text", "I can't.", "--penn"}, "I ca n&apos;t .\n"},
		{"penn mode", "", []string{"--text", "(a)", "--mode", "ptb"}, "-LRB- a -RRB-\n"},
		{"language", "", []string{"--text", "l'été", "--lang", "fr", "--no-escape"}, "l' été\n"},
		{"hyphens off", "", []string{"--text", "foo-bar", "--hyphen-splitting=false"}, "foo-bar\n"},
		{"hyphens on", "", []string{"--text", "foo-bar"}, "foo @-@ bar\n"},
		{"normalize", "", []string{"--text", "“Hi”", "--normalize"}, "&quot; Hi &quot;\n"},
		{"web protection", "", []string{"--text", "see https://example.com/a", "--protect-web"}, "see https://example.com/a\n"},
		{"protected pattern", "", []string{"--text", "fix JIRA-123", "--protected-pattern", `[A-Z]+-\d+`}, "fix JIRA-123\n"},
		{"workers", "one.\ntwo.\nthree.\n", []string{"--workers", "2"}, "one .\ntwo .\nthree .\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"tokenize"}, tt.args...)
			out, err := runCLI(t, tt.stdin, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTokenizeCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "a b\n\n", "tokenize", "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second struct {
		Tokens []string `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, []string{"a", "b"}, first.Tokens)
	assert.NotNil(t, second.Tokens)
	assert.Empty(t, second.Tokens)
}

func TestTokenizeCmd_Errors(t *testing.T) {
	_, err := runCLI(t, "", "tokenize", "--text", "x", "--lang", "xx")
	require.ErrorIs(t, err, lang.ErrUnsupportedLanguage)

	_, err = runCLI(t, "", "tokenize", "--text", "x", "--lang", "xx", "--penn")
	require.ErrorIs(t, err, lang.ErrUnsupportedLanguage)

	_, err = runCLI(t, "", "tokenize", "--text", "x", "--format", "xml")
	require.Error(t, err)

	_, err = runCLI(t, "", "tokenize", "--text", "x", "--protected-pattern", "(")
	require.Error(t, err)
}

func TestTokenizeCmd_FallbackLanguage(t *testing.T) {
	out, err := runCLI(t, "", "tokenize", "--text", "isn't", "--lang", "xx", "--fallback-lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "isn &apos;t\n", out)
}

func TestNormalizeCmd(t *testing.T) {
	out, err := runCLI(t, "Text ( with spaces ) here\n„Quote“\n", "normalize")
	require.NoError(t, err)
	assert.Equal(t, "Text (with spaces) here\n\"Quote\"\n", out)

	out, err = runCLI(t, "", "normalize", "--text", "1\u00a0000", "--lang", "de")
	require.NoError(t, err)
	assert.Equal(t, "1,000\n", out)

	_, err = runCLI(t, "", "normalize", "--text", "x", "--lang", "xx")
	require.ErrorIs(t, err, lang.ErrUnsupportedLanguage)
}

func TestLanguagesCmd(t *testing.T) {
	out, err := runCLI(t, "", "languages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(lang.KnownCodes())+1)
	assert.Contains(t, lines[0], "STRATEGY")

	var en string
	for _, l := range lines {
		if strings.HasPrefix(l, "en ") {
			en = l
		}
	}
	assert.Contains(t, en, "english_clitic")
	assert.Contains(t, en, "true")

	out, err = runCLI(t, "", "languages", "--hyphen-splitting=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "true")
}
