package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	INTEGER    // decimal integer literal
	STRING     // string literal "..."

	// Keywords
	LET    // "let"
	FN     // "fn" (reserved, no grammar consumes it)
	IF     // "if"
	ELSE   // "else"
	WHILE  // "while"
	RETURN // "return"

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	EQUALS  // =   (equality, there is no assignment operator)
	NOT_EQ  // !
	LESS    // <
	GREATER // >

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	STRING:     "STRING",
	LET:        "LET",
	FN:         "FN",
	IF:         "IF",
	ELSE:       "ELSE",
	WHILE:      "WHILE",
	RETURN:     "RETURN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	EQUALS:     "EQUALS",
	NOT_EQ:     "NOT_EQ",
	LESS:       "LESS",
	GREATER:    "GREATER",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
}

// operatorSymbols gives the source spelling of each operator, used when
// rendering binary expressions.
var operatorSymbols = map[TokenType]string{
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	EQUALS:  "=",
	NOT_EQ:  "!=",
	LESS:    "<",
	GREATER: ">",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Symbol returns the operator spelling for operator types and the type name otherwise.
func (tt TokenType) Symbol() string {
	if s, ok := operatorSymbols[tt]; ok {
		return s
	}
	return tt.String()
}

// IsArithmetic reports whether tt is one of + - * /.
func (tt TokenType) IsArithmetic() bool {
	return tt == PLUS || tt == MINUS || tt == STAR || tt == SLASH
}

// IsComparison reports whether tt is one of = ! < >.
func (tt TokenType) IsComparison() bool {
	return tt == EQUALS || tt == NOT_EQ || tt == LESS || tt == GREATER
}

// Token is a single lexical unit produced by the Scanner.
// Tokens are values; the parser never mutates them.
type Token struct {
	Type   TokenType
	Lexeme string // identifier name, string payload, or the matched source text
	Value  int64  // parsed value, INTEGER only
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}

// describe renders a token for error messages.
func (t Token) describe() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case IDENTIFIER, STRING, INTEGER:
		return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
	default:
		return fmt.Sprintf("%s (%q)", t.Type, t.Lexeme)
	}
}
