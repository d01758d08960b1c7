package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantErr  error
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Whitespace Only",
			input: " \t\r\n  \n",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 3},
			},
		},
		{
			name:  "Let Statement",
			input: "let x = 10 + 20;",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1},
				{Type: IDENTIFIER, Lexeme: "x", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: INTEGER, Lexeme: "10", Value: 10, Line: 1},
				{Type: PLUS, Lexeme: "+", Line: 1},
				{Type: INTEGER, Lexeme: "20", Value: 20, Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Operators and Delimiters",
			input: "+ - * / = ! < > ( ) { } , ;",
			expected: []Token{
				{Type: PLUS, Lexeme: "+", Line: 1},
				{Type: MINUS, Lexeme: "-", Line: 1},
				{Type: STAR, Lexeme: "*", Line: 1},
				{Type: SLASH, Lexeme: "/", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: NOT_EQ, Lexeme: "!", Line: 1},
				{Type: LESS, Lexeme: "<", Line: 1},
				{Type: GREATER, Lexeme: ">", Line: 1},
				{Type: LPAREN, Lexeme: "(", Line: 1},
				{Type: RPAREN, Lexeme: ")", Line: 1},
				{Type: LBRACE, Lexeme: "{", Line: 1},
				{Type: RBRACE, Lexeme: "}", Line: 1},
				{Type: COMMA, Lexeme: ",", Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Two Character Operators Are Split",
			input: "a != b == c",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a", Line: 1},
				{Type: NOT_EQ, Lexeme: "!", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: IDENTIFIER, Lexeme: "b", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: IDENTIFIER, Lexeme: "c", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "let fn if else while return variableName _under_score x1 lets",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1},
				{Type: FN, Lexeme: "fn", Line: 1},
				{Type: IF, Lexeme: "if", Line: 1},
				{Type: ELSE, Lexeme: "else", Line: 1},
				{Type: WHILE, Lexeme: "while", Line: 1},
				{Type: RETURN, Lexeme: "return", Line: 1},
				{Type: IDENTIFIER, Lexeme: "variableName", Line: 1},
				{Type: IDENTIFIER, Lexeme: "_under_score", Line: 1},
				{Type: IDENTIFIER, Lexeme: "x1", Line: 1},
				{Type: IDENTIFIER, Lexeme: "lets", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Integers",
			input: "123 0 007 9223372036854775807",
			expected: []Token{
				{Type: INTEGER, Lexeme: "123", Value: 123, Line: 1},
				{Type: INTEGER, Lexeme: "0", Value: 0, Line: 1},
				{Type: INTEGER, Lexeme: "007", Value: 7, Line: 1},
				{Type: INTEGER, Lexeme: "9223372036854775807", Value: 9223372036854775807, Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Digits Then Letters",
			input: "12abc",
			expected: []Token{
				{Type: INTEGER, Lexeme: "12", Value: 12, Line: 1},
				{Type: IDENTIFIER, Lexeme: "abc", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "String Literal",
			input: "\"hello world\"",
			expected: []Token{
				{Type: STRING, Lexeme: "hello world", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Empty String Literal",
			input: "\"\"",
			expected: []Token{
				{Type: STRING, Lexeme: "", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "String Literal Is Verbatim",
			input: "\"a\\n;{\nb\" x",
			expected: []Token{
				{Type: STRING, Lexeme: "a\\n;{\nb", Line: 1},
				{Type: IDENTIFIER, Lexeme: "x", Line: 2},
				{Type: EOF, Lexeme: "", Line: 2},
			},
		},
		{
			name:  "Line Tracking",
			input: "let\nx\n\n=",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1},
				{Type: IDENTIFIER, Lexeme: "x", Line: 2},
				{Type: EQUALS, Lexeme: "=", Line: 4},
				{Type: EOF, Lexeme: "", Line: 4},
			},
		},
		{
			name:  "Unicode Identifier Continuation",
			input: "let café = 1; let x_ü2 = café;",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1},
				{Type: IDENTIFIER, Lexeme: "café", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: INTEGER, Lexeme: "1", Value: 1, Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: LET, Lexeme: "let", Line: 1},
				{Type: IDENTIFIER, Lexeme: "x_ü2", Line: 1},
				{Type: EQUALS, Lexeme: "=", Line: 1},
				{Type: IDENTIFIER, Lexeme: "café", Line: 1},
				{Type: SEMICOLON, Lexeme: ";", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:    "Unterminated String",
			input:   "\"abc",
			wantErr: ErrUnterminatedString,
		},
		{
			name:    "Unexpected Character",
			input:   "let x = 1 @ 2;",
			wantErr: ErrUnexpectedChar,
		},
		{
			name:    "Comments Are Not Recognised",
			input:   "# comment",
			wantErr: ErrUnexpectedChar,
		},
		{
			name:    "Non ASCII Leading Character",
			input:   "é",
			wantErr: ErrUnexpectedChar,
		},
		{
			name:    "Integer Overflow",
			input:   "9223372036854775808",
			wantErr: ErrIntegerOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var scanErr *ScanError
				assert.True(t, errors.As(err, &scanErr), "expected *ScanError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLexCombinedOperators(t *testing.T) {
	got, err := Lex("a != b == c = d ! e", WithCombinedOperators())
	require.NoError(t, err)

	types := make([]TokenType, len(got))
	for i, tok := range got {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		IDENTIFIER, NOT_EQ, IDENTIFIER, EQUALS, IDENTIFIER, EQUALS, IDENTIFIER, NOT_EQ, IDENTIFIER, EOF,
	}, types)
	assert.Equal(t, "!=", got[1].Lexeme)
	assert.Equal(t, "==", got[3].Lexeme)
}

func TestScannerNextIsIdempotentAtEOF(t *testing.T) {
	s := NewScanner("x")

	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, IDENTIFIER, tok.Type)

	for i := 0; i < 3; i++ {
		tok, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Type)
	}
}

func TestScannerErrorDetails(t *testing.T) {
	t.Run("UnexpectedChar", func(t *testing.T) {
		_, err := Lex("x\n  $")
		var scanErr *ScanError
		require.True(t, errors.As(err, &scanErr))
		assert.Equal(t, '$', scanErr.Char)
		assert.Equal(t, 2, scanErr.Line)
		assert.Contains(t, err.Error(), "unexpected character '$'")
	})

	t.Run("IntegerOverflow", func(t *testing.T) {
		_, err := Lex("let big = 99999999999999999999;")
		var scanErr *ScanError
		require.True(t, errors.As(err, &scanErr))
		assert.Equal(t, "99999999999999999999", scanErr.Lexeme)
		assert.Contains(t, err.Error(), "out of 64-bit range")
	})

	t.Run("TokensBeforeErrorAreReturned", func(t *testing.T) {
		toks, err := Lex("let x = \"open")
		require.Error(t, err)
		require.Len(t, toks, 3)
		assert.Equal(t, EQUALS, toks[2].Type)
	})
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "NOT_EQ", NOT_EQ.String())
	assert.Equal(t, "!=", NOT_EQ.Symbol())
	assert.Equal(t, "LBRACE", LBRACE.Symbol())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
}
