package lox

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenBang     TokenType = "!"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenComma     TokenType = ","
	tokenDot       TokenType = "."
	tokenSemicolon TokenType = ";"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"

	tokenVar    TokenType = "VAR"
	tokenFun    TokenType = "FUN"
	tokenClass  TokenType = "CLASS"
	tokenIf     TokenType = "IF"
	tokenElse   TokenType = "ELSE"
	tokenWhile  TokenType = "WHILE"
	tokenFor    TokenType = "FOR"
	tokenReturn TokenType = "RETURN"
	tokenPrint  TokenType = "PRINT"
	tokenTrue   TokenType = "TRUE"
	tokenFalse  TokenType = "FALSE"
	tokenNil    TokenType = "NIL"
	tokenAnd    TokenType = "AND"
	tokenOr     TokenType = "OR"
	tokenThis   TokenType = "THIS"
	tokenSuper  TokenType = "SUPER"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source text.
type Position struct {
	Line   int
	Column int
}
