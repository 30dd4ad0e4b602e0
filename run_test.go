package lox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScanErrorPrintsDiagnosticAndStops(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(false)
	ok := Run(interp, "var x = @;", Options{Out: &buf})

	require.False(t, ok)
	assert.Contains(t, buf.String(), "[line 1] Error:")
}

func TestRunParseErrorReportsEveryDeclarationIndependently(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(false)
	// Two independent malformed declarations on two lines; both should
	// surface as diagnostics, not just the first.
	ok := Run(interp, "var;\nvar;\n", Options{Out: &buf})

	require.False(t, ok)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestRunWithSessionIDDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(true)
	ok := Run(interp, `print "ok";`, Options{Out: &buf, SessionID: "test-session"})
	require.True(t, ok)
	assert.Equal(t, "ok\n", buf.String())
}

func TestRunDefaultsOutputWhenOptsOutIsNil(t *testing.T) {
	interp := NewInterpreter(false)
	// No Out given: Run must not panic and must still fall back to a
	// valid writer internally.
	ok := Run(interp, `print "fine";`, Options{})
	assert.True(t, ok)
}

func TestRunColorsDiagnosticsByDefault(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(false)
	ok := Run(interp, "var x = @;", Options{Out: &buf})

	require.False(t, ok)
	assert.Contains(t, buf.String(), ansiRed)
	assert.Contains(t, buf.String(), ansiReset)
}

func TestRunNoColorSuppressesANSICodes(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(false)
	ok := Run(interp, "var x = @;", Options{Out: &buf, Config: Config{NoColor: true}})

	require.False(t, ok)
	assert.NotContains(t, buf.String(), ansiRed)
	assert.Contains(t, buf.String(), "[line 1] Error:")
}

func TestRunThreadsMaxLoopDepthIntoParser(t *testing.T) {
	var buf bytes.Buffer
	interp := NewInterpreter(false)
	ok := Run(interp, "while (true) { while (true) { print 1; } }", Options{
		Out:    &buf,
		Config: Config{MaxLoopDepth: 1},
	})

	require.False(t, ok)
	assert.Contains(t, buf.String(), "max_loop_depth")
}
