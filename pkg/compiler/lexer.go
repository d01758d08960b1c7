package compiler

import (
	"strconv"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"let":    LET,
	"fn":     FN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
}

// singleCharTokens maps each operator and delimiter character to its token.
// '=' is equality and '!' is not-equal on its own; see WithCombinedOperators.
var singleCharTokens = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'=': EQUALS,
	'!': NOT_EQ,
	'<': LESS,
	'>': GREATER,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	',': COMMA,
	';': SEMICOLON,
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithCombinedOperators makes the scanner read "==" as a single EQUALS and
// "!=" as a single NOT_EQ. Without it every character is its own token.
func WithCombinedOperators() ScannerOption {
	return func(s *Scanner) { s.combineOps = true }
}

// Scanner holds all mutable state for a single scanning pass over src.
// It produces one token per call to Next.
type Scanner struct {
	src        []rune
	pos        int // index of the next rune to consume
	line       int // current 1-based source line
	combineOps bool
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src string, opts ...ScannerOption) *Scanner {
	s := &Scanner{src: []rune(src), pos: 0, line: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// peek returns the rune at the current position without advancing.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// advance consumes one rune and returns it.
func (s *Scanner) advance() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}
	return r
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) && isSpace(s.peek()) {
		s.advance()
	}
}

// scanIdent collects a full identifier or keyword token.
// The first character (ASCII letter or '_') must still be at s.peek();
// the rest may be any Unicode letter or digit.
func (s *Scanner) scanIdent() Token {
	line := s.line
	start := s.pos
	for s.pos < len(s.src) {
		r := s.peek()
		if !isIdentPart(r) {
			break
		}
		s.advance()
	}
	lexeme := string(s.src[start:s.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line}
}

// scanInt collects a maximal run of decimal digits.
// The first digit must still be at s.peek().
func (s *Scanner) scanInt() (Token, error) {
	line := s.line
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.peek()) {
		s.advance()
	}
	lexeme := string(s.src[start:s.pos])

	// Only digits were consumed, so the one failure left is a range error.
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Token{}, &ScanError{Kind: ErrIntegerOverflow, Lexeme: lexeme, Line: line}
	}
	return Token{Type: INTEGER, Lexeme: lexeme, Value: val, Line: line}, nil
}

// scanString collects a string literal "...". The payload is taken verbatim,
// newlines included; there are no escape sequences.
func (s *Scanner) scanString() (Token, error) {
	line := s.line
	s.advance() // consume opening "
	start := s.pos

	for s.pos < len(s.src) && s.peek() != '"' {
		s.advance()
	}

	if s.pos >= len(s.src) {
		return Token{}, &ScanError{Kind: ErrUnterminatedString, Lexeme: string(s.src[start:]), Line: line}
	}
	val := string(s.src[start:s.pos])
	s.advance() // consume closing "

	return Token{Type: STRING, Lexeme: val, Line: line}, nil
}

// Next skips whitespace and returns the next Token. Once the source is
// exhausted every call returns the EOF token.
func (s *Scanner) Next() (Token, error) {
	s.skipWhitespace()
	if s.pos >= len(s.src) {
		return Token{Type: EOF, Lexeme: "", Line: s.line}, nil
	}

	ch := s.peek()
	line := s.line

	if isLetter(ch) || ch == '_' {
		return s.scanIdent(), nil
	}
	if isDigit(ch) {
		return s.scanInt()
	}
	if ch == '"' {
		return s.scanString()
	}

	tt, ok := singleCharTokens[ch]
	if !ok {
		return Token{}, &ScanError{Kind: ErrUnexpectedChar, Char: ch, Line: line}
	}
	s.advance()

	if s.combineOps && (ch == '=' || ch == '!') && s.peek() == '=' {
		s.advance()
		return Token{Type: tt, Lexeme: string(ch) + "=", Line: line}, nil
	}
	return Token{Type: tt, Lexeme: string(ch), Line: line}, nil
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first malformed character sequence.
func Lex(src string, opts ...ScannerOption) ([]Token, error) {
	s := NewScanner(src, opts...)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
