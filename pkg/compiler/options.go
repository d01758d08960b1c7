package compiler

import "log/slog"

// DefaultMaxDepth bounds statement and expression nesting in the parser and
// the analyzer.
const DefaultMaxDepth = 256

type settings struct {
	maxDepth int
	logger   *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{maxDepth: DefaultMaxDepth, logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Parser or an Analyzer.
type Option func(*settings)

// WithMaxDepth sets the nesting bound. Values <= 0 keep the default.
func WithMaxDepth(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for debug tracing. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
