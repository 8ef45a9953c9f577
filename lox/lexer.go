package lox

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type scanError struct {
	pos Position
	msg string
}

func (e *scanError) Error() string {
	return fmt.Sprintf("scan error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
}

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune

	errors []error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
		tok.Literal = ""
	case '+':
		tok = l.makeToken(tokenPlus, "+")
		l.readRune()
	case '-':
		tok = l.makeToken(tokenMinus, "-")
		l.readRune()
	case '*':
		tok = l.makeToken(tokenAsterisk, "*")
		l.readRune()
	case '/':
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
		l.readRune()
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case '.':
		tok = l.makeToken(tokenDot, ".")
		l.readRune()
	case ';':
		tok = l.makeToken(tokenSemicolon, ";")
		l.readRune()
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			tok = l.makeToken(tokenNotEQ, "!=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenBang, "!")
			l.readRune()
		}
	case '=':
		if l.peekRune() == '=' {
			l.readRune()
			tok = l.makeToken(tokenEQ, "==")
			l.readRune()
		} else {
			tok = l.makeToken(tokenAssign, "=")
			l.readRune()
		}
	case '>':
		if l.peekRune() == '=' {
			l.readRune()
			tok = l.makeToken(tokenGTE, ">=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenGT, ">")
			l.readRune()
		}
	case '<':
		if l.peekRune() == '=' {
			l.readRune()
			tok = l.makeToken(tokenLTE, "<=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenLT, "<")
			l.readRune()
		}
	case '"':
		literal, ok := l.readString(tok.Pos)
		if !ok {
			// Error already recorded; resume after the broken literal.
			return l.NextToken()
		}
		tok.Type = tokenString
		tok.Literal = literal
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok
		case unicode.IsDigit(l.ch):
			tok.Type = tokenNumber
			tok.Literal = l.readNumber()
			return tok
		default:
			l.errorAt(tok.Pos, "unexpected character %q", l.ch)
			l.readRune()
			// Keep scanning so one pass reports every bad character.
			return l.NextToken()
		}
	}

	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) errorAt(pos Position, format string, args ...any) {
	l.errors = append(l.errors, &scanError{pos: pos, msg: fmt.Sprintf(format, args...)})
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
			continue
		case '/':
			if l.peekRune() == '/' {
				l.skipComment()
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() string {
	start := l.currentOffset()
	for unicode.IsDigit(l.peekRune()) {
		l.readRune()
	}
	// A dot only joins the literal when a digit follows; a trailing
	// dot is property access on the number.
	if l.peekRune() == '.' && unicode.IsDigit(l.peekRuneN(1)) {
		l.readRune()
		for unicode.IsDigit(l.peekRune()) {
			l.readRune()
		}
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readString(start Position) (string, bool) {
	begin := l.offset
	for {
		l.readRune()
		switch l.ch {
		case 0:
			l.errorAt(start, "unterminated string")
			return "", false
		case '"':
			literal := l.input[begin : l.currentOffset()]
			l.readRune()
			return literal, true
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "var":
		return tokenVar
	case "fun":
		return tokenFun
	case "class":
		return tokenClass
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "while":
		return tokenWhile
	case "for":
		return tokenFor
	case "return":
		return tokenReturn
	case "print":
		return tokenPrint
	case "true":
		return tokenTrue
	case "false":
		return tokenFalse
	case "nil":
		return tokenNil
	case "and":
		return tokenAnd
	case "or":
		return tokenOr
	case "this":
		return tokenThis
	case "super":
		return tokenSuper
	}
	return tokenIdent
}
