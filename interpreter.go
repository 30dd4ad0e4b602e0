package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/juju/loggo"
	"github.com/samber/lo"
)

var interpLog = loggo.GetLogger("lox.interpreter")

// Interpreter walks the AST produced by Parser, executing statements
// sequentially against a persistent global Environment. A single
// instance is reused across REPL lines.
type Interpreter struct {
	globals *Environment
	current *Environment
	repl    bool
	out     io.Writer
}

// NewInterpreter creates an Interpreter. When repl is true, bare
// expression statements print their evaluated value. Output defaults to
// os.Stdout; tests substitute a buffer.
func NewInterpreter(repl bool) *Interpreter {
	globals := NewEnvironment()
	return &Interpreter{globals: globals, current: globals, repl: repl, out: os.Stdout}
}

// SetOutput redirects Print/REPL output; Run calls it when Options.Out
// is set.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// Interpret executes stmts in order against the interpreter's
// persistent environment. A runtime error aborts the remaining
// statements in this call only — the Interpreter itself remains usable
// for the next REPL line. The returned *Error, if non-nil, is already a
// line-annotated diagnostic ready to print.
func (in *Interpreter) Interpret(stmts []Stmt) *Error {
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*Error); ok {
				return rerr
			}
			return newError(RuntimeError, "interpreter", 0, err.Error())
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		value, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		if in.repl {
			fmt.Fprintln(in.out, value.String())
		}
		return nil

	case *PrintStmt:
		value, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, value.String())
		return nil

	case *VarStmt:
		value := Nil
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.current.Define(s.Name.Lexeme, value)
		return nil

	case *BlockStmt:
		return in.executeBlock(s.Stmts, NewChildEnvironment(in.current))

	case *IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if cond.IsTruthy() {
			return in.execute(s.Then)
		} else if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil

	case *WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !cond.IsTruthy() {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				if isBreakSignal(err) {
					return nil
				}
				return err
			}
		}

	case *BreakStmt:
		interpLog.Debugf("break at line %d", s.Keyword.Line)
		return errBreak

	default:
		return fmt.Errorf("unreachable: unknown statement type %T", stmt)
	}
}

// executeBlock pushes env as the current scope, runs stmts in order,
// and restores the prior scope on every exit path — normal completion,
// a returned runtime error, or a break signal.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.current
	in.current = env
	defer func() { in.current = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return valueFromLiteral(e.Value), nil

	case *GroupingExpr:
		return in.evaluate(e.Inner)

	case *VariableExpr:
		if v, ok := in.current.Get(e.Name.Lexeme); ok {
			return v, nil
		}
		return Value{}, in.runtimeError(e.Name.Line, "Variable '%s' is undefined.", e.Name.Lexeme)

	case *AssignExpr:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return Value{}, err
		}
		if err := in.current.Assign(e.Name.Lexeme, value); err != nil {
			return Value{}, in.runtimeError(e.Name.Line, "%s", err.Error())
		}
		return value, nil

	case *UnaryExpr:
		return in.evalUnary(e)

	case *LogicalExpr:
		return in.evalLogical(e)

	case *BinaryExpr:
		return in.evalBinary(e)

	default:
		return Value{}, fmt.Errorf("unreachable: unknown expression type %T", expr)
	}
}

func (in *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator.Kind {
	case Minus:
		if right.Kind != ValueNumber {
			return Value{}, in.runtimeError(e.Operator.Line, "Operand must be a number.")
		}
		return NumberValue(-right.Number), nil
	case Bang:
		// Requires Bool, deliberately stricter than truthiness-based
		// negation.
		if right.Kind != ValueBool {
			return Value{}, in.runtimeError(e.Operator.Line, "Operand must be a bool.")
		}
		return BoolValue(!right.Bool), nil
	default:
		return Value{}, fmt.Errorf("unreachable: unary operator %s", e.Operator.Kind)
	}
}

// evalLogical implements and/or short-circuiting: the value that
// decided the outcome is returned, not necessarily a Bool.
func (in *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return Value{}, err
	}

	if e.Operator.Kind == Or {
		if left.IsTruthy() {
			return left, nil
		}
	} else { // And
		if !left.IsTruthy() {
			return left, nil
		}
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator.Kind {
	case EqualEqual:
		return BoolValue(left.Equals(right)), nil
	case BangEqual:
		return BoolValue(!left.Equals(right)), nil

	case Greater, GreaterEqual, Less, LessEqual:
		if left.Kind != ValueNumber || right.Kind != ValueNumber {
			return Value{}, in.runtimeError(e.Operator.Line, "Operands must be numbers.")
		}
		switch e.Operator.Kind {
		case Greater:
			return BoolValue(left.Number > right.Number), nil
		case GreaterEqual:
			return BoolValue(left.Number >= right.Number), nil
		case Less:
			return BoolValue(left.Number < right.Number), nil
		default: // LessEqual
			return BoolValue(left.Number <= right.Number), nil
		}

	case Minus, Star, Slash:
		if left.Kind != ValueNumber || right.Kind != ValueNumber {
			return Value{}, in.runtimeError(e.Operator.Line, "Operands must be numbers.")
		}
		switch e.Operator.Kind {
		case Minus:
			return NumberValue(left.Number - right.Number), nil
		case Star:
			return NumberValue(left.Number * right.Number), nil
		default: // Slash
			if right.Number == 0.0 {
				return Value{}, in.runtimeError(e.Operator.Line, "cannot divide by 0.")
			}
			return NumberValue(left.Number / right.Number), nil
		}

	case Plus:
		if left.Kind == ValueNumber && right.Kind == ValueNumber {
			return NumberValue(left.Number + right.Number), nil
		}
		if left.Kind == ValueString && right.Kind == ValueString {
			return StringValue(left.Text + right.Text), nil
		}
		return Value{}, in.runtimeError(e.Operator.Line, "Operands must be two numbers or two strings.")

	default:
		return Value{}, fmt.Errorf("unreachable: binary operator %s", e.Operator.Kind)
	}
}

func (in *Interpreter) runtimeError(line int, format string, args ...any) *Error {
	return newError(RuntimeError, "interpreter", line, fmt.Sprintf(format, args...))
}

// collectMessages flattens a Reporter's diagnostics into plain strings,
// e.g. for logging every error a scan/parse pass accumulated in one shot.
func collectMessages(errs []*Error) []string {
	return lo.Map(errs, func(e *Error, _ int) string {
		return e.Error()
	})
}
