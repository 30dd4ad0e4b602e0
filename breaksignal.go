package lox

import "errors"

// errBreak is the distinguished control-flow signal a `break` statement
// raises. It is never a user-visible diagnostic: execute returns it from
// a BreakStmt, and the nearest enclosing While traps it with errors.Is
// and turns it into a normal loop exit. A dedicated sentinel error can
// never collide with a real runtime error message, unlike comparing
// against a literal string.
var errBreak = errors.New("break")

func isBreakSignal(err error) bool {
	return errors.Is(err, errBreak)
}
