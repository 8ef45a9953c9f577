package lox

import (
	"fmt"
	"strconv"
)

type parseError struct {
	pos Position
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseNumberLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenNil, p.parseNilLiteral)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenThis, p.parseThisExpression)
	p.registerPrefix(tokenSuper, p.parseSuperExpression)

	p.infixFns[tokenAssign] = p.parseAssignExpression
	p.infixFns[tokenOr] = p.parseLogicalExpression
	p.infixFns[tokenAnd] = p.parseLogicalExpression
	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenLTE] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenGTE] = p.parseInfixExpression
	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenDot] = p.parseGetExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// scanErrors exposes errors the lexer accumulated while the parser
// consumed its token stream.
func (p *parser) scanErrors() []error {
	return p.l.errors
}

func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program, p.errors
}

func (p *parser) parseDeclaration() Statement {
	var stmt Statement
	switch p.curToken.Type {
	case tokenVar:
		stmt = p.parseVarStatement()
	case tokenFun:
		stmt = p.parseFunctionStatement()
	case tokenClass:
		stmt = p.parseClassStatement()
	default:
		stmt = p.parseStatement()
	}
	if stmt == nil {
		p.synchronize()
	}
	return stmt
}

// synchronize discards tokens until a statement boundary so one parse
// can keep reporting independent errors instead of cascading.
func (p *parser) synchronize() {
	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			return
		}
		switch p.peekToken.Type {
		case tokenClass, tokenFun, tokenVar, tokenFor, tokenIf, tokenWhile, tokenPrint, tokenReturn:
			return
		}
		p.nextToken()
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenLBrace:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	var initializer Expression
	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		initializer = p.parseExpression(lowestPrec)
		if initializer == nil {
			return nil
		}
	}

	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &VarStmt{Name: name, Initializer: initializer, position: pos}
}

func (p *parser) parseFunctionStatement() Statement {
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	fn := p.parseFunction()
	if fn == nil {
		return nil
	}
	return fn
}

// parseFunction parses a named function with the current token on the
// name. Declarations and class methods share this shape.
func (p *parser) parseFunction() *FunctionStmt {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	if !p.expectPeek(tokenLParen) {
		return nil
	}

	params := []string{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		p.nextToken()
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "parameter name")
			return nil
		}
		params = append(params, p.curToken.Literal)
		for p.peekToken.Type == tokenComma {
			p.nextToken()
			p.nextToken()
			if p.curToken.Type != tokenIdent {
				p.errorExpected(p.curToken, "parameter name")
				return nil
			}
			params = append(params, p.curToken.Literal)
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
	}

	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	return &FunctionStmt{Name: name, Params: params, Body: body.(*BlockStmt).Statements, position: pos}
}

func (p *parser) parseClassStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	var superclass *VariableExpr
	if p.peekToken.Type == tokenLT {
		p.nextToken()
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		superclass = &VariableExpr{Name: p.curToken.Literal, position: p.curToken.Pos}
	}

	if !p.expectPeek(tokenLBrace) {
		return nil
	}

	methods := []*FunctionStmt{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "method name")
			return nil
		}
		method := p.parseFunction()
		if method == nil {
			return nil
		}
		methods = append(methods, method)
		p.nextToken()
	}

	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, "}")
		return nil
	}

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods, position: pos}
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &PrintStmt{Expr: expr, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
		return &ReturnStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	then := p.parseStatement()
	if then == nil {
		return nil
	}

	var alternate Statement
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		alternate = p.parseStatement()
		if alternate == nil {
			return nil
		}
	}

	return &IfStmt{Condition: condition, Then: then, Else: alternate, position: pos}
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}

	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseForStatement desugars the C-style for into while: the
// initializer and loop run inside a synthetic block, the increment is
// appended to the body.
func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}

	var initializer Statement
	p.nextToken()
	switch p.curToken.Type {
	case tokenSemicolon:
	case tokenVar:
		initializer = p.parseVarStatement()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.parseExpressionStatement()
		if initializer == nil {
			return nil
		}
	}

	var condition Expression
	if p.peekToken.Type != tokenSemicolon {
		p.nextToken()
		condition = p.parseExpression(lowestPrec)
		if condition == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}

	var increment Expression
	if p.peekToken.Type != tokenRParen {
		p.nextToken()
		increment = p.parseExpression(lowestPrec)
		if increment == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}

	if increment != nil {
		body = &BlockStmt{
			Statements: []Statement{body, &ExprStmt{Expr: increment, position: increment.Pos()}},
			position:   body.Pos(),
		}
	}
	if condition == nil {
		condition = &BoolLiteral{Value: true, position: pos}
	}
	var loop Statement = &WhileStmt{Condition: condition, Body: body, position: pos}
	if initializer != nil {
		loop = &BlockStmt{Statements: []Statement{initializer, loop}, position: pos}
	}
	return loop
}

func (p *parser) parseBlockStatement() Statement {
	pos := p.curToken.Pos
	stmts := []Statement{}

	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		stmt := p.parseDeclaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}

	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, "}")
		return nil
	}

	return &BlockStmt{Statements: stmts, position: pos}
}

func (p *parser) parseExpressionStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ExprStmt{Expr: expr, position: expr.Pos()}
}

const (
	lowestPrec = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenAssign:   precAssign,
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precTerm,
	tokenMinus:    precTerm,
	tokenSlash:    precFactor,
	tokenAsterisk: precFactor,
	tokenLParen:   precCall,
	tokenDot:      precCall,
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()

	for left != nil && p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &VariableExpr{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, &parseError{pos: p.curToken.Pos, msg: "invalid number literal"})
		return nil
	}
	return &NumberLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parseNilLiteral() Expression {
	return &NilLiteral{position: p.curToken.Pos}
}

func (p *parser) parseThisExpression() Expression {
	return &ThisExpr{position: p.curToken.Pos}
}

func (p *parser) parseSuperExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenDot) {
		return nil
	}
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &SuperExpr{Method: p.curToken.Literal, position: pos}
}

func (p *parser) parseGroupedExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &GroupingExpr{Expr: expr, position: pos}
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseLogicalExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &LogicalExpr{Left: left, Operator: operator, Right: right, position: pos}
}

// parseAssignExpression parses right-associatively so a = b = c chains,
// then checks the target only after the value parses; the error does not
// abort the statement.
func (p *parser) parseAssignExpression(left Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(precAssign - 1)
	if value == nil {
		return nil
	}

	switch target := left.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: target.Name, Value: value, position: target.Pos()}
	case *GetExpr:
		return &SetExpr{Object: target.Object, Name: target.Name, Value: value, position: target.Pos()}
	default:
		p.errors = append(p.errors, &parseError{pos: pos, msg: "invalid assignment target"})
		return left
	}
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	expr := &CallExpr{Callee: callee, position: p.curToken.Pos}
	args := []Expression{}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		expr.Args = args
		return expr
	}

	p.nextToken()
	arg := p.parseExpression(lowestPrec)
	if arg == nil {
		return nil
	}
	args = append(args, arg)

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}

	expr.Args = args
	return expr
}

func (p *parser) parseGetExpression(object Expression) Expression {
	p.nextToken()
	if p.curToken.Type != tokenIdent {
		p.errorExpected(p.curToken, "property name after .")
		return nil
	}
	return &GetExpr{Object: object, Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, string(tt))
	return false
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: fmt.Sprintf("expected %s, got %s", expected, tok.Type)})
}

func (p *parser) errorUnexpected(tok Token) {
	p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: fmt.Sprintf("unexpected token %s", tok.Type)})
}
