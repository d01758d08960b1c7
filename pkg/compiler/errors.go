package compiler

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by the front end wraps exactly one of
// these, so callers can branch with errors.Is without parsing messages.
var (
	ErrUnexpectedChar      = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrIntegerOverflow     = errors.New("integer literal out of range")
	ErrSyntax              = errors.New("syntax error")
	ErrNestingTooDeep      = errors.New("nesting too deep")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUndeclared          = errors.New("undeclared variable")
	ErrRedeclared          = errors.New("symbol already defined")
	ErrNonBooleanCondition = errors.New("condition must be boolean")
	ErrUnknownNode         = errors.New("unknown AST node")
	ErrUnknownOperator     = errors.New("unknown binary operator")
)

// ScanError reports a malformed character sequence. The scanner stops at the
// first one; the cursor is left where scanning failed.
type ScanError struct {
	Kind   error  // one of ErrUnexpectedChar, ErrUnterminatedString, ErrIntegerOverflow
	Char   rune   // offending character, ErrUnexpectedChar only
	Lexeme string // offending text, ErrUnterminatedString and ErrIntegerOverflow
	Line   int
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("line %d: unexpected character %q", e.Line, e.Char)
	case ErrIntegerOverflow:
		return fmt.Sprintf("line %d: integer %s out of 64-bit range", e.Line, e.Lexeme)
	case ErrUnterminatedString:
		return fmt.Sprintf("line %d: unterminated string literal", e.Line)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	}
}

func (e *ScanError) Unwrap() error { return e.Kind }

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Expected string // what the grammar wanted, e.g. "SEMICOLON" or "expression"
	Found    Token
	Kind     error // ErrSyntax or ErrNestingTooDeep
}

func (e *ParseError) Error() string {
	if e.Kind == ErrNestingTooDeep {
		return fmt.Sprintf("line %d: nesting too deep at %s", e.Found.Line, e.Found.describe())
	}
	return fmt.Sprintf("line %d: expected %s, found %s", e.Found.Line, e.Expected, e.Found.describe())
}

func (e *ParseError) Unwrap() error {
	if e.Kind == nil {
		return ErrSyntax
	}
	return e.Kind
}

// SemanticError reports the first type or scope violation found by the Analyzer.
type SemanticError struct {
	Kind error
	Msg  string
}

func (e *SemanticError) Error() string { return e.Msg }

func (e *SemanticError) Unwrap() error { return e.Kind }

func semanticErrorf(kind error, format string, args ...any) error {
	return &SemanticError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
