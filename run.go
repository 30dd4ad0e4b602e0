package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/juju/loggo"
)

var runLog = loggo.GetLogger("lox.run")

var osStdout io.Writer = os.Stdout

// Options configures a Run call's ambient behavior. It is the seam
// between the core (this package) and its external collaborators: Run
// only ever needs a source string and an Interpreter; everything else
// here is optional wiring for diagnostics.
type Options struct {
	// Out receives Print/REPL output. Defaults to the Interpreter's
	// own default (os.Stdout) when nil.
	Out io.Writer
	// SessionID, when set, names the logger ("lox.run.<id>") that Run's
	// own --debug log lines go to, so concurrent/successive runs sharing
	// a log sink (e.g. a long-lived REPL) stay distinguishable. Log lines
	// from the scanner, parser and interpreter are not tagged with it.
	SessionID string
	// Config carries the loaded .loxrc.yaml/CLI-flag settings: NoColor
	// toggles ANSI styling on diagnostics, MaxLoopDepth caps how deeply
	// while/for loops may nest before the parser rejects the source.
	Config Config
}

// Run is the single entry point the core exposes to its callers: it
// drives source through Scanner → Parser → Interpreter and reports any
// failure by printing line-annotated diagnostics. interp is the
// persistent interpreter instance the REPL reuses across lines; ok is
// false if any stage failed, in which case the caller (cmd/lox) decides
// the process exit code.
func Run(interp *Interpreter, source string, opts Options) (ok bool) {
	if opts.Out != nil {
		interp.SetOutput(opts.Out)
	}
	out := interp.out

	sessionLog := runLog
	if opts.SessionID != "" {
		sessionLog = loggo.GetLogger("lox.run." + opts.SessionID)
	}

	reporter := &Reporter{}

	scanner := NewScanner(source, reporter)
	tokens, scanOK := scanner.ScanTokens()
	if !scanOK {
		printDiagnostics(out, reporter.Errors(), opts.Config.NoColor)
		sessionLog.Debugf("scan failed: %v", collectMessages(reporter.Errors()))
		return false
	}

	parser := NewParser(tokens, reporter, opts.Config.MaxLoopDepth)
	stmts, parseOK := parser.Parse()
	if !parseOK {
		printDiagnostics(out, reporter.Errors(), opts.Config.NoColor)
		sessionLog.Debugf("parse failed: %v", collectMessages(reporter.Errors()))
		return false
	}

	if err := interp.Interpret(stmts); err != nil {
		fmt.Fprintln(out, err.Render(opts.Config.NoColor))
		sessionLog.Debugf("runtime error: %s", err.Error())
		return false
	}

	return true
}

func printDiagnostics(out io.Writer, errs []*Error, noColor bool) {
	for _, e := range errs {
		fmt.Fprintln(out, e.Render(noColor))
	}
}
