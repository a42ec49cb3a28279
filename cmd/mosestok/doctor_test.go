package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/doctor"
)

func TestDoctorCmd_Passes(t *testing.T) {
	out, err := runCLI(t, "", "doctor", "--fallback-lang", "de", "--protect-web")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: moses")
	assert.Contains(t, out, "doctor checks passed")
	assert.NotContains(t, out, doctor.FailMark)
}

func TestDoctorCmd_Fails(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown language", []string{"doctor", "--lang", "xx"}, `language "xx"`},
		{"bad pattern", []string{"doctor", "--protected-pattern", "("}, "protected patterns"},
		{"missing prefix dir", []string{"doctor", "--prefix-dir", "/nonexistent/tables"}, "prefix directory"},
		{"unreachable server", []string{"doctor", "--addr", "127.0.0.1:1"}, "server 127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, out, doctor.FailMark+" ")
			assert.Contains(t, out, tt.want)
		})
	}
}
