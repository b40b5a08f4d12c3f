package parser

import (
	"errors"
	"fmt"

	"github.com/sandrolain/gotox/pkg/types"
)

// errTooManyErrors unwinds the parse once MaxErrors is reached.
var errTooManyErrors = errors.New("too many errors")

// Parser implements a recursive descent parser over a token slice.
// Each precedence level has its own method, from assignment (lowest)
// down to primary (highest).
type Parser struct {
	tokens []Token
	pos    int
	errors []*types.Error
	depth  int
	opts   CompileOptions
}

// NewParser creates a new parser for the given tokens.
// A missing trailing TokenEOF is added.
func NewParser(tokens []Token, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxErrors: 0,
		MaxDepth:  512,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Parser{
		tokens: normalizeTokens(tokens),
		opts:   options,
	}
}

// normalizeTokens drops error tokens and guarantees a trailing TokenEOF.
func normalizeTokens(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Kind == TokenError {
			continue
		}
		out = append(out, t)
		if t.Kind == TokenEOF {
			return out
		}
	}
	loc := types.NewLocation(1, 1)
	if len(out) > 0 {
		loc = out[len(out)-1].Location
	}
	return append(out, Token{Kind: TokenEOF, Location: loc})
}

// Parse parses every declaration up to the end of input.
func (p *Parser) Parse() ([]types.Stmt, error) {
	var stmts []types.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if errors.Is(err, errTooManyErrors) {
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if len(p.errors) > 0 {
		return nil, &types.AggregateError{Errors: p.errors}
	}
	return stmts, nil
}

// Errors returns the syntax errors collected so far.
func (p *Parser) Errors() []*types.Error {
	return p.errors
}

// Declarations

// declaration parses one declaration. A syntax error is recorded and the
// parser synchronizes; the returned statement is then nil. The only error
// returned is errTooManyErrors.
func (p *Parser) declaration() (types.Stmt, error) {
	var (
		stmt types.Stmt
		err  error
	)
	if p.match(TokenVar) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err == nil {
		return stmt, nil
	}
	if errors.Is(err, errTooManyErrors) {
		return nil, err
	}

	var synErr *types.Error
	if errors.As(err, &synErr) {
		p.errors = append(p.errors, synErr)
	}
	if p.opts.MaxErrors > 0 && len(p.errors) >= p.opts.MaxErrors {
		return nil, errTooManyErrors
	}
	p.synchronize()
	return nil, nil
}

func (p *Parser) varDeclaration() (types.Stmt, error) {
	keyword := p.previous()
	if !p.check(TokenIdentifier) {
		return nil, p.errorAtCurrent(types.ErrExpectedVariableName, "Expected variable name")
	}
	name := p.advance()

	var init types.Expr
	if p.match(TokenEqual) {
		var err error
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(TokenSemicolon, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &types.VarStmt{Name: name.Lexeme, Initializer: init, Location: keyword.Location}, nil
}

// Statements

func (p *Parser) statement() (types.Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch t := p.peek(); t.Kind {
	case TokenPrint:
		p.advance()
		return p.printStatement()
	case TokenLeftBrace:
		p.advance()
		return p.block()
	case TokenIf:
		p.advance()
		return p.ifStatement()
	case TokenClass, TokenFun, TokenFor, TokenWhile, TokenReturn:
		return nil, p.unsupported(t)
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (types.Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenSemicolon, "Expected ';' after value"); err != nil {
		return nil, err
	}
	return &types.PrintStmt{Expr: value, Location: keyword.Location}, nil
}

// block parses the declarations up to the closing brace. The opening
// brace has already been consumed.
func (p *Parser) block() (types.Stmt, error) {
	brace := p.previous()
	var stmts []types.Stmt
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(TokenRightBrace, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return &types.BlockStmt{Stmts: stmts, Location: brace.Location}, nil
}

func (p *Parser) ifStatement() (types.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(TokenLeftParen, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRightParen, "Expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els types.Stmt
	if p.match(TokenElse) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &types.IfStmt{Cond: cond, Then: then, Else: els, Location: keyword.Location}, nil
}

func (p *Parser) expressionStatement() (types.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenSemicolon, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return &types.ExprStmt{Expr: expr, Location: expr.Loc()}, nil
}

// Expressions

func (p *Parser) expression() (types.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.assignment()
}

// assignment is right-associative: a = b = c assigns c to b, then to a.
func (p *Parser) assignment() (types.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(TokenEqual) {
		equals := p.previous()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*types.VariableExpr); ok {
			return &types.AssignExpr{Name: v.Name, Value: value, Location: v.Location}, nil
		}
		return nil, types.NewSyntaxError(types.ErrInvalidAssignTarget, "Invalid assignment target", equals.Location).
			WithToken(equals.Lexeme)
	}

	return expr, nil
}

func (p *Parser) or() (types.Expr, error) {
	return p.logical(TokenOr, types.OpOr, p.and)
}

func (p *Parser) and() (types.Expr, error) {
	return p.logical(TokenAnd, types.OpAnd, p.equality)
}

// logical folds a left-associative chain of one short-circuit operator.
func (p *Parser) logical(tk TokenKind, op types.LogicalOp, next func() (types.Expr, error)) (types.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(tk) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &types.LogicalExpr{Left: expr, Op: op, Right: right, Location: operator.Location}
	}
	return expr, nil
}

func (p *Parser) equality() (types.Expr, error) {
	return p.binary(p.comparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) comparison() (types.Expr, error) {
	return p.binary(p.term, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) term() (types.Expr, error) {
	return p.binary(p.factor, TokenMinus, TokenPlus)
}

func (p *Parser) factor() (types.Expr, error) {
	return p.binary(p.unary, TokenSlash, TokenStar)
}

// binary folds a left-associative chain of the given operators.
func (p *Parser) binary(next func() (types.Expr, error), kinds ...TokenKind) (types.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &types.BinaryExpr{
			Op:       binaryOps[operator.Kind],
			Left:     expr,
			Right:    right,
			Location: operator.Location,
		}
	}
	return expr, nil
}

var binaryOps = map[TokenKind]types.BinaryOp{
	TokenBangEqual:    types.OpNotEqual,
	TokenEqualEqual:   types.OpEqual,
	TokenGreater:      types.OpGreater,
	TokenGreaterEqual: types.OpGreaterEqual,
	TokenLess:         types.OpLess,
	TokenLessEqual:    types.OpLessEqual,
	TokenPlus:         types.OpAdd,
	TokenMinus:        types.OpSubtract,
	TokenSlash:        types.OpDivide,
	TokenStar:         types.OpMultiply,
}

func (p *Parser) unary() (types.Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		operator := p.previous()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		op := types.OpNot
		if operator.Kind == TokenMinus {
			op = types.OpNegate
		}
		return &types.UnaryExpr{Op: op, Operand: operand, Location: operator.Location}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (types.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case TokenFalse:
		p.advance()
		return &types.LiteralExpr{Value: types.BoolValue(false, t.Location), Location: t.Location}, nil
	case TokenTrue:
		p.advance()
		return &types.LiteralExpr{Value: types.BoolValue(true, t.Location), Location: t.Location}, nil
	case TokenNil:
		p.advance()
		return &types.LiteralExpr{Value: types.NilValue(t.Location), Location: t.Location}, nil
	case TokenNumber:
		p.advance()
		return &types.LiteralExpr{Value: types.NumberValue(t.Num, t.Location), Location: t.Location}, nil
	case TokenString:
		p.advance()
		return &types.LiteralExpr{Value: types.StringValue(t.Str, t.Location), Location: t.Location}, nil
	case TokenIdentifier:
		p.advance()
		return &types.VariableExpr{Name: t.Lexeme, Location: t.Location}, nil
	case TokenLeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TokenRightParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return &types.GroupingExpr{Inner: inner, Location: t.Location}, nil
	case TokenThis, TokenSuper:
		return nil, p.unsupported(t)
	default:
		return nil, p.errorAtCurrent(types.ErrExpectedExpression, "Expected expression")
	}
}

// Helpers

// synchronize discards tokens until a likely statement boundary: just past
// a ';' or just before a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}
		switch p.peek().Kind {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}
		p.advance()
	}
}

// consume checks if the current token matches the expected kind and advances.
func (p *Parser) consume(tk TokenKind, message string) (Token, error) {
	if p.check(tk) {
		return p.advance(), nil
	}
	return Token{}, p.errorAtCurrent(types.ErrExpectedToken, message)
}

// errorAtCurrent creates a syntax error about the next token. At the end of
// input the error points at the last consumed token instead.
func (p *Parser) errorAtCurrent(code types.ErrorCode, message string) *types.Error {
	t := p.peek()
	loc := t.Location
	if t.Kind == TokenEOF && p.pos > 0 {
		loc = p.previous().Location
	}
	return types.NewSyntaxError(code, fmt.Sprintf("%s, found %s", message, t), loc).WithToken(t.Lexeme)
}

func (p *Parser) unsupported(t Token) *types.Error {
	return types.NewSyntaxError(types.ErrUnsupportedKeyword,
		fmt.Sprintf("`%s` is reserved but not supported", t.Lexeme), t.Location).WithToken(t.Lexeme)
}

// enter tracks nesting depth; every successful enter must be paired with leave.
func (p *Parser) enter() error {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return p.errorAtCurrent(types.ErrNestingTooDeep, "Nesting too deep")
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, tk := range kinds {
		if p.check(tk) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tk TokenKind) bool {
	return p.peek().Kind == tk
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}
