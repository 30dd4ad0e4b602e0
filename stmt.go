package lox

// Stmt is the tagged union of statement AST nodes.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates Expr and discards the value, except in REPL
// mode where the interpreter prints it.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt evaluates Expr, stringifies it, and writes it to stdout
// followed by a newline.
type PrintStmt struct {
	Expr Expr
}

// VarStmt is a `var` declaration. Initializer is nil when the
// declaration has no `= expr` part, in which case the binding is
// created with value Nil.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// BlockStmt is a `{ ... }` body. Entering it pushes a new Environment;
// leaving it — by any path, including an error or a break signal —
// pops back to the enclosing one.
type BlockStmt struct {
	Stmts []Stmt
}

// IfStmt's ElseBranch is nil when there is no `else`.
type IfStmt struct {
	Condition  Expr
	Then       Stmt
	ElseBranch Stmt
}

// WhileStmt is also the desugaring target for `for`: a `for` loop is
// parsed directly into a BlockStmt wrapping a WhileStmt; there is no
// separate ForStmt node.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// BreakStmt raises errBreak when executed; valid only inside a While
// body, enforced by the parser's loop-depth counter, not by the
// evaluator.
type BreakStmt struct {
	Keyword Token
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()      {}
