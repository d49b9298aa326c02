package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rashparse.dev/rash/syntax"
)

func TestPromptForBareArrowWhenNothingOpen(t *testing.T) {
	_, ctx := syntax.Probe("echo hi\n", syntax.PermissiveConfig())
	assert.Equal(t, "> ", promptFor(ctx))
}

func TestPromptForReflectsOpenConstruct(t *testing.T) {
	_, ctx := syntax.Probe("for x in a; do\n", syntax.PermissiveConfig())
	assert.Equal(t, "for do> ", promptFor(ctx))
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestReportBufferPrintsStatementCount(t *testing.T) {
	cfg := syntax.PermissiveConfig()
	out := captureStdout(t, func() {
		reportBuffer("echo one\necho two\n", cfg)
	})
	assert.Equal(t, "parsed 2 statement(s)\n", out)
}

func TestReportBufferPrintsDiagnosticsOnParseError(t *testing.T) {
	cfg := syntax.PermissiveConfig()
	out := captureStdout(t, func() {
		reportBuffer("if true\ndone\n", cfg)
	})
	assert.Contains(t, out, "<stdin>:")
}
