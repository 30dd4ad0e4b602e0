package lox

import (
	"fmt"

	"github.com/juju/loggo"
)

var parserLog = loggo.GetLogger("lox.parser")

// Parser is a cursor over a token sequence, implementing a recursive-
// descent, precedence-climbing expression grammar with panic-mode error
// recovery.
type Parser struct {
	tokens       []Token
	current      int
	reporter     *Reporter
	loopDepth    int
	maxLoopDepth int
}

// NewParser creates a Parser over tokens (which must end in EOF),
// reporting diagnostics to reporter. maxLoopDepth caps how deeply
// while/for loops may nest before the parser reports an error; 0 means
// unbounded.
func NewParser(tokens []Token, reporter *Reporter, maxLoopDepth int) *Parser {
	return &Parser{tokens: tokens, reporter: reporter, maxLoopDepth: maxLoopDepth}
}

// Parse consumes the full token stream and returns the top-level
// statement sequence, or ok=false if any declaration failed to parse
// (after every recoverable error was reported and synchronized past).
func (p *Parser) Parse() (stmts []Stmt, ok bool) {
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, !p.reporter.HadError()
}

// --- token cursor primitives ---

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind TokenType, msg string) (Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), msg)
	return Token{}, false
}

func (p *Parser) errorAt(tok Token, msg string) {
	p.reporter.Report(ParseError, "parser", tok.Line, msg)
}

// synchronize discards tokens until the previous one was a statement
// terminator (`;`) or the next one starts a new statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == Semicolon {
			return
		}
		switch p.peek().Kind {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}
		p.advance()
	}
}

// --- declarations & statements ---

func (p *Parser) declaration() Stmt {
	parserLog.Tracef("declaration at line %d", p.peek().Line)
	if p.match(Var) {
		stmt, ok := p.varDeclaration()
		if !ok {
			p.synchronize()
			return nil
		}
		return stmt
	}
	stmt, ok := p.statement()
	if !ok {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) varDeclaration() (Stmt, bool) {
	name, ok := p.consume(Identifier, "Expect variable name.")
	if !ok {
		return nil, false
	}

	var initializer Expr
	if p.match(Equal) {
		initializer = p.expression()
	}

	if _, ok := p.consume(Semicolon, "Expect ';' after variable declaration."); !ok {
		return nil, false
	}
	return &VarStmt{Name: name, Initializer: initializer}, true
}

func (p *Parser) statement() (Stmt, bool) {
	switch {
	case p.match(Print):
		return p.printStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(For):
		return p.forStatement()
	case p.match(Break):
		return p.breakStatement()
	case p.match(If):
		return p.ifStatement()
	case p.match(LeftBrace):
		stmts, ok := p.block()
		if !ok {
			return nil, false
		}
		return &BlockStmt{Stmts: stmts}, true
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (Stmt, bool) {
	expr := p.expression()
	if _, ok := p.consume(Semicolon, "Expect ';' after value."); !ok {
		return nil, false
	}
	return &PrintStmt{Expr: expr}, true
}

func (p *Parser) expressionStatement() (Stmt, bool) {
	expr := p.expression()
	if _, ok := p.consume(Semicolon, "Expect ';' after expression."); !ok {
		return nil, false
	}
	return &ExpressionStmt{Expr: expr}, true
}

func (p *Parser) block() ([]Stmt, bool) {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, ok := p.consume(RightBrace, "Expect '}' after block."); !ok {
		return nil, false
	}
	return stmts, true
}

func (p *Parser) ifStatement() (Stmt, bool) {
	if _, ok := p.consume(LeftParen, "Expect '(' after 'if'."); !ok {
		return nil, false
	}
	condition := p.expression()
	if _, ok := p.consume(RightParen, "Expect ')' after if condition."); !ok {
		return nil, false
	}

	thenBranch, ok := p.statement()
	if !ok {
		return nil, false
	}

	var elseBranch Stmt
	if p.match(Else) {
		elseBranch, ok = p.statement()
		if !ok {
			return nil, false
		}
	}

	return &IfStmt{Condition: condition, Then: thenBranch, ElseBranch: elseBranch}, true
}

func (p *Parser) whileStatement() (Stmt, bool) {
	if _, ok := p.consume(LeftParen, "Expect '(' after 'while'."); !ok {
		return nil, false
	}
	condition := p.expression()
	if _, ok := p.consume(RightParen, "Expect ')' after condition."); !ok {
		return nil, false
	}

	if !p.enterLoop() {
		return nil, false
	}
	body, ok := p.statement()
	p.loopDepth--
	if !ok {
		return nil, false
	}

	return &WhileStmt{Condition: condition, Body: body}, true
}

// enterLoop increments loopDepth and reports a parse error (leaving
// loopDepth unchanged) if that exceeds maxLoopDepth. maxLoopDepth == 0
// means unbounded.
func (p *Parser) enterLoop() bool {
	p.loopDepth++
	if p.maxLoopDepth > 0 && p.loopDepth > p.maxLoopDepth {
		p.errorAt(p.peek(), fmt.Sprintf("loop nesting exceeds configured max_loop_depth of %d.", p.maxLoopDepth))
		p.loopDepth--
		return false
	}
	return true
}

// forStatement desugars `for (init; cond; incr) body` into nested
// Block/While nodes at parse time: the body becomes
// `{ body; incr; }` (when incr is present), wrapped in
// `while (cond) <that block>`, wrapped in turn in `{ init; <while> }`
// (when init is present). cond defaults to `true` when omitted.
func (p *Parser) forStatement() (Stmt, bool) {
	if _, ok := p.consume(LeftParen, "Expect '(' after 'for'."); !ok {
		return nil, false
	}

	var initializer Stmt
	var ok bool
	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(Var):
		initializer, ok = p.varDeclaration()
		if !ok {
			return nil, false
		}
	default:
		initializer, ok = p.expressionStatement()
		if !ok {
			return nil, false
		}
	}

	var condition Expr
	if !p.check(Semicolon) {
		condition = p.expression()
	}
	if _, ok := p.consume(Semicolon, "Expect ';' after loop condition."); !ok {
		return nil, false
	}

	var increment Expr
	if !p.check(RightParen) {
		increment = p.expression()
	}
	if _, ok := p.consume(RightParen, "Expect ')' after for clauses."); !ok {
		return nil, false
	}

	if !p.enterLoop() {
		return nil, false
	}
	body, ok := p.statement()
	p.loopDepth--
	if !ok {
		return nil, false
	}

	if increment != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: increment}}}
	}

	if condition == nil {
		condition = &LiteralExpr{Value: Literal{Kind: LiteralBool, Bool: true}}
	}
	body = &WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &BlockStmt{Stmts: []Stmt{initializer, body}}
	}

	return body, true
}

func (p *Parser) breakStatement() (Stmt, bool) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "'break' statement must be in a loop block.")
		// The trailing ';' is left for synchronize() to consume, so a
		// stray `break;` doesn't cascade into a second error.
		return nil, false
	}
	if _, ok := p.consume(Semicolon, "Expect ';' after 'break'."); !ok {
		return nil, false
	}
	return &BreakStmt{Keyword: keyword}, true
}

// --- expressions ---
//
// assignment → or → and → equality → comparison → term → factor → unary → primary
// each left-associative level folds in a loop; unary is the only
// right-associative (recursive) level besides assignment itself.

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(Equal) {
		equals := p.previous()
		value := p.assignment()

		if varExpr, isVar := expr.(*VariableExpr); isVar {
			return &AssignExpr{Name: varExpr.Name, Value: value}
		}
		// Invalid assignment target is reported but does not abort
		// parsing of the enclosing expression: the parser continues
		// with the already-parsed left-hand side.
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr
}

// or and and both iterate against the next-higher-precedence rule
// (and for or, equality for and) rather than recursing into themselves, so chains of
// `a and b and c` build a left-associative, flat fold.
func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(Or) {
		operator := p.previous()
		right := p.and()
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(And) {
		operator := p.previous()
		right := p.equality()
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BangEqual, EqualEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(Minus, Plus) {
		operator := p.previous()
		right := p.factor()
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(Slash, Star) {
		operator := p.previous()
		right := p.unary()
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(Bang, Minus) {
		operator := p.previous()
		right := p.unary()
		return &UnaryExpr{Operator: operator, Right: right}
	}
	return p.primary()
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(False):
		return &LiteralExpr{Value: Literal{Kind: LiteralBool, Bool: false}}
	case p.match(True):
		return &LiteralExpr{Value: Literal{Kind: LiteralBool, Bool: true}}
	case p.match(Nil):
		return &LiteralExpr{Value: Literal{Kind: LiteralNil}}
	case p.match(Number, String):
		return &LiteralExpr{Value: p.previous().Literal}
	case p.match(Identifier):
		return &VariableExpr{Name: p.previous()}
	case p.match(LeftParen):
		expr := p.expression()
		p.consume(RightParen, "Expect ')' after expression.")
		return &GroupingExpr{Inner: expr}
	default:
		p.errorAt(p.peek(), "Expect expression.")
		// Return a harmless placeholder so the caller's expression tree
		// stays well-formed; the reporter already has the diagnostic
		// and Parse()'s ok will be false regardless.
		return &LiteralExpr{Value: Literal{Kind: LiteralNil}}
	}
}
