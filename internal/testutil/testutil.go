// Package testutil provides shared helpers for package tests: skip helpers
// for optional external rule tables, golden-file loading, and token
// assertions.
//
// Typical usage:
//
//	func TestMosesTables(t *testing.T) {
//	    dir := testutil.RequireMosesPrefixDir(t)
//	    reg, err := lang.LoadDir(dir)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MosesPrefixDirEnv names the environment variable pointing at a Moses
// share/nonbreaking_prefixes checkout.
const MosesPrefixDirEnv = "MOSESTOK_MOSES_PREFIX_DIR"

// RequireMosesPrefixDir returns the directory named by MOSESTOK_MOSES_PREFIX_DIR,
// skipping the test if the variable is unset or the directory has no
// nonbreaking_prefix.en file.
func RequireMosesPrefixDir(tb testing.TB) string {
	tb.Helper()

	dir := os.Getenv(MosesPrefixDirEnv)
	if dir == "" {
		tb.Skipf("%s not set; skipping tests against the upstream Moses prefix tables", MosesPrefixDirEnv)
		return ""
	}

	_, err := os.Stat(filepath.Join(dir, "nonbreaking_prefix.en"))
	if err != nil {
		tb.Skipf("Moses prefix tables not found at %s=%q: %v", MosesPrefixDirEnv, dir, err)
		return ""
	}

	return dir
}

// BuiltinRuleDir returns the path of the embedded rule tables relative to
// the repository root.
func BuiltinRuleDir() string {
	return filepath.Join("internal", "lang", "data")
}
