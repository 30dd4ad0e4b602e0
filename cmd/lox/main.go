// Command lox runs the interpreter implemented in this module, either
// against a script file or as an interactive REPL. Process entry,
// argument handling, file I/O, and the interactive line reader all live
// here, outside the core package.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/juju/loggo"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/Flyclops/lox"
)

// Exit codes: 64 for CLI misuse (too many arguments), 0 on success,
// nonzero for scan/parse/runtime failure in file mode.
const (
	exitUsage   = 64
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		debug    bool
		noColor  bool
		showAST  bool
		rootCmd  = &cobra.Command{
			Use:           "lox [script]",
			Short:         "A tree-walking interpreter for the language specified in this repository",
			Args:          cobra.MaximumNArgs(1),
			SilenceUsage:  true,
			SilenceErrors: true,
		}
		exitCode = 0
	)

	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable trace-level logging to stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.Flags().BoolVar(&showAST, "ast", false, "pretty-print the parsed statement tree before executing")

	rootCmd.RunE = func(cmd *cobra.Command, cmdArgs []string) error {
		cfg, err := lox.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if debug {
			cfg.Debug = true
		}
		if noColor {
			cfg.NoColor = true
		}

		if cfg.Debug {
			loggo.GetLogger("lox").SetLogLevel(loggo.TRACE)
		}

		sessionID := uuid.New().String()

		if len(cmdArgs) == 1 {
			exitCode = runFile(cmdArgs[0], sessionID, showAST, cfg)
			return nil
		}
		exitCode = runPrompt(sessionID, showAST, cfg)
		return nil
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// The usage message is printed to stdout, not stderr, and the
		// process exits 64.
		fmt.Println("Usage: jlox [script]")
		return exitUsage
	}
	return exitCode
}

// runFile implements batch mode: scan/parse/runtime failure exits
// nonzero, success exits 0.
func runFile(path string, sessionID string, showAST bool, cfg lox.Config) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: could not read file %q: %v\n", path, err)
		return exitFailure
	}

	interp := lox.NewInterpreter(false)
	ok := runSource(interp, string(data), sessionID, showAST, cfg)
	if !ok {
		return exitFailure
	}
	return 0
}

// runPrompt implements the REPL: a single interpreter instance persists
// across lines, each non-blank line is an independent program, and a
// blank line exits the process with code 0.
func runPrompt(sessionID string, showAST bool, cfg lox.Config) int {
	interp := lox.NewInterpreter(true)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return 0
		}
		line := scanner.Text()
		if line == "" {
			return 0
		}
		runSource(interp, line, sessionID, showAST, cfg)
	}
}

func runSource(interp *lox.Interpreter, source string, sessionID string, showAST bool, cfg lox.Config) bool {
	if showAST {
		dumpAST(source)
	}
	return lox.Run(interp, source, lox.Options{SessionID: sessionID, Config: cfg})
}

// dumpAST is a best-effort debug aid for --ast: it re-scans and
// re-parses the source independently of the real Run call (so a
// scan/parse failure here never changes Run's own diagnostics) and
// pretty-prints whatever statement tree it manages to build.
func dumpAST(source string) {
	reporter := &lox.Reporter{}
	scanner := lox.NewScanner(source, reporter)
	tokens, ok := scanner.ScanTokens()
	if !ok {
		return
	}
	parser := lox.NewParser(tokens, reporter, 0)
	stmts, ok := parser.Parse()
	if !ok {
		return
	}
	pretty.Println(stmts)
}
