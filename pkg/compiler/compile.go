package compiler

import (
	"fmt"
	"log/slog"
)

// Options configures a full Compile run.
type Options struct {
	MaxDepth          int          // nesting bound for parser and analyzer; <= 0 means DefaultMaxDepth
	CombinedOperators bool         // scan "==" and "!=" as single tokens
	Logger            *slog.Logger // nil means slog.Default()
}

// DefaultOptions returns Options with the default nesting limit.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func (o Options) scannerOptions() []ScannerOption {
	if o.CombinedOperators {
		return []ScannerOption{WithCombinedOperators()}
	}
	return nil
}

func (o Options) stageOptions() []Option {
	return []Option{WithMaxDepth(o.MaxDepth), WithLogger(o.Logger)}
}

// Compile runs lex, parse and check over src and returns the validated AST.
// The returned error names the failing stage and wraps the stage's own error.
func Compile(src string, opts Options) (*Program, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens, err := Lex(src, opts.scannerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}
	logger.Debug("lexed source", "tokens", len(tokens))

	prog, err := Parse(tokens, opts.stageOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	logger.Debug("parsed program", "statements", len(prog.Body.Stmts))

	if _, err := Check(prog, opts.stageOptions()...); err != nil {
		return nil, fmt.Errorf("semantic error: %w", err)
	}
	logger.Debug("semantic analysis passed")

	return prog, nil
}
