package testutil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-moses-tokenizer/internal/testutil"
)

func TestBuiltinRuleDir_Exists(t *testing.T) {
	// cwd is the package directory during tests; the repo root is two levels up.
	p := filepath.Join("..", "..", testutil.BuiltinRuleDir(), "nonbreaking_prefix.en")
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("built-in rule table not found at %q: %v", p, err)
	}
}

func TestRequireMosesPrefixDir_SkipsWhenUnset(t *testing.T) {
	t.Setenv(testutil.MosesPrefixDirEnv, "")

	skipped := false
	fakeT := &skipTracker{TB: t, onSkip: func() { skipped = true }}
	testutil.RequireMosesPrefixDir(fakeT)
	if !skipped {
		t.Error("expected RequireMosesPrefixDir to skip when the variable is unset")
	}
}

func TestRequireMosesPrefixDir_SkipsWhenTablesAbsent(t *testing.T) {
	t.Setenv(testutil.MosesPrefixDirEnv, t.TempDir())

	skipped := false
	fakeT := &skipTracker{TB: t, onSkip: func() { skipped = true }}
	testutil.RequireMosesPrefixDir(fakeT)
	if !skipped {
		t.Error("expected RequireMosesPrefixDir to skip when nonbreaking_prefix.en is missing")
	}
}

func TestRequireMosesPrefixDir_ReturnsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "nonbreaking_prefix.en"), []byte("Mr\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(testutil.MosesPrefixDirEnv, dir)

	if got := testutil.RequireMosesPrefixDir(t); got != dir {
		t.Errorf("RequireMosesPrefixDir = %q; want %q", got, dir)
	}
}

func TestLoadTokenCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	data := `[{"name":"a","lang":"en","text":"x.","tokens":["x","."]},
	{"name":"b","lang":"fr","text":"d'a","escape":false,"tokens":["d'","a"]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := testutil.LoadTokenCases(t, path)
	if len(cases) != 2 {
		t.Fatalf("len(cases) = %d; want 2", len(cases))
	}
	if !cases[0].EscapeOrDefault() {
		t.Error("escape should default to true")
	}
	if cases[1].EscapeOrDefault() {
		t.Error("escape=false should be kept")
	}
}

func TestAssertTokens_ReportsFirstDifference(t *testing.T) {
	rec := &errorRecorder{TB: t}
	testutil.AssertTokens(rec, []string{"a", "b"}, []string{"a", "c"})
	if !strings.Contains(rec.msg, `differ at 1: got "b", want "c"`) {
		t.Errorf("unexpected message: %q", rec.msg)
	}

	rec = &errorRecorder{TB: t}
	testutil.AssertTokens(rec, []string{"a"}, []string{"a", "b"})
	if !strings.Contains(rec.msg, `got "<end>", want "b"`) {
		t.Errorf("unexpected message: %q", rec.msg)
	}

	rec = &errorRecorder{TB: t}
	testutil.AssertTokens(rec, []string{"a"}, []string{"a"})
	if rec.msg != "" {
		t.Errorf("equal slices reported: %q", rec.msg)
	}
}

// skipTracker is a minimal testing.TB implementation that intercepts Skip calls.
type skipTracker struct {
	testing.TB
	onSkip func()
}

func (s *skipTracker) Helper() {}

func (s *skipTracker) Skipf(_ string, _ ...any) {
	s.onSkip()
	// Do NOT call s.TB.Skip: that would actually skip the outer test.
}

// errorRecorder captures Errorf instead of failing the outer test.
type errorRecorder struct {
	testing.TB
	msg string
}

func (e *errorRecorder) Helper() {}

func (e *errorRecorder) Errorf(format string, args ...any) {
	e.msg = fmt.Sprintf(format, args...)
}
