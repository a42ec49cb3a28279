package doctor_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/doctor"
	"github.com/example/go-moses-tokenizer/internal/lang"
)

var errTablesBroken = errors.New("tables broken")

func hasFailureContaining(failures []string, substr string) bool {
	for _, f := range failures {
		if strings.Contains(f, substr) {
			return true
		}
	}

	return false
}

func smallRegistry(t *testing.T) *lang.Registry {
	t.Helper()

	en, err := lang.BuildProfile("en", []lang.Prefix{{Word: "Mr"}}, lang.StrategyEnglishClitic, true)
	require.NoError(t, err)
	reg, err := lang.NewRegistry(en)
	require.NoError(t, err)
	return reg
}

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		Lang:         "en",
		FallbackLang: "fr",
		ProtectWeb:   true,
		Patterns:     []string{`[A-Z]+-\d+`},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	for _, want := range []string{"built-in rule tables", "language en", "language fr", "tokenize en", "not set"} {
		assert.Contains(t, out.String(), want)
	}
	assert.NotContains(t, out.String(), doctor.FailMark)
}

// ---------------------------------------------------------------------------
// built-in tables
// ---------------------------------------------------------------------------

func TestRun_BuiltinLoadErrorFails(t *testing.T) {
	cfg := doctor.Config{
		Lang:        "en",
		LoadBuiltin: func() (*lang.Registry, error) { return nil, errTablesBroken },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when built-in tables do not load")
	}
	if !hasFailureContaining(result.Failures(), "tables broken") {
		t.Errorf("expected failure mentioning the load error, got: %v", result.Failures())
	}
	// Nothing else can be checked without a registry.
	assert.Len(t, result.Failures(), 1)
}

func TestRun_BuiltinMissingLanguagesFails(t *testing.T) {
	reg := smallRegistry(t)
	cfg := doctor.Config{
		Lang:        "en",
		LoadBuiltin: func() (*lang.Registry, error) { return reg, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	require.True(t, result.Failed())
	assert.True(t, hasFailureContaining(result.Failures(), "no profile for"), result.Failures())
	assert.True(t, hasFailureContaining(result.Failures(), "fr"), result.Failures())
	// The remaining checks still run against the partial registry.
	assert.Contains(t, out.String(), doctor.PassMark+" language en")
}

// ---------------------------------------------------------------------------
// prefix directory
// ---------------------------------------------------------------------------

func TestRun_PrefixDirIsUsed(t *testing.T) {
	reg := smallRegistry(t)
	var gotDir string
	cfg := doctor.Config{
		Lang:      "en",
		PrefixDir: "/tables",
		LoadDir: func(dir string) (*lang.Registry, error) {
			gotDir = dir
			return reg, nil
		},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	assert.False(t, result.Failed(), result.Failures())
	assert.Equal(t, "/tables", gotDir)
	assert.Contains(t, out.String(), "prefix directory /tables: 1 languages")
	assert.Contains(t, out.String(), "language en: english_clitic, 1 prefixes")
}

func TestRun_PrefixDirErrorFails(t *testing.T) {
	cfg := doctor.Config{
		Lang:      "en",
		PrefixDir: filepath.Join(t.TempDir(), "missing"),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	require.True(t, result.Failed())
	assert.True(t, hasFailureContaining(result.Failures(), "prefix directory"), result.Failures())
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func TestRun_UnknownLanguagesFail(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		fallback string
		want     string
	}{
		{"unknown default", "xx", "", `language "xx"`},
		{"empty default", "", "", `language ""`},
		{"unknown fallback", "en", "klingon", `language "klingon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			result := doctor.Run(doctor.Config{Lang: tt.lang, FallbackLang: tt.fallback}, &out)

			require.True(t, result.Failed())
			assert.True(t, hasFailureContaining(result.Failures(), tt.want), result.Failures())
			assert.True(t, hasFailureContaining(result.Failures(), "unsupported language"), result.Failures())
		})
	}
}

// ---------------------------------------------------------------------------
// protected patterns
// ---------------------------------------------------------------------------

func TestRun_InvalidPatternFails(t *testing.T) {
	cfg := doctor.Config{
		Lang:     "en",
		Patterns: []string{"(unclosed"},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	require.True(t, result.Failed())
	assert.True(t, hasFailureContaining(result.Failures(), "protected patterns"), result.Failures())
	assert.NotContains(t, out.String(), "tokenize en")
}

// ---------------------------------------------------------------------------
// output format
// ---------------------------------------------------------------------------

func TestRun_EveryLineIsMarked(t *testing.T) {
	var out strings.Builder
	doctor.Run(doctor.Config{Lang: "xx", Patterns: []string{"ok"}}, &out)

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if !strings.HasPrefix(line, doctor.PassMark) && !strings.HasPrefix(line, doctor.FailMark) {
			t.Errorf("line %q has no pass/fail mark", line)
		}
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	assert.False(t, r.Failed())

	r.AddFailure("server: unreachable")
	assert.True(t, r.Failed())
	assert.Equal(t, []string{"server: unreachable"}, r.Failures())

	// Failures returns a copy.
	r.Failures()[0] = "changed"
	assert.Equal(t, "server: unreachable", r.Failures()[0])
}
