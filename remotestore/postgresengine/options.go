package postgresengine

import (
	"errors"
)

// ErrInvalidTablePrefix is returned for a prefix that cannot form a valid identifier.
var ErrInvalidTablePrefix = errors.New("table prefix must not contain whitespace")

// Option defines a functional option for configuring an EntityStore.
type Option func(*EntityStore) error

// WithLogger sets the logger for the EntityStore.
//
// Debug level: statements with execution timing (development use)
// Warn level: non-critical issues like missing records and cleanup failures
// Error level: failures that cause operation errors.
func WithLogger(logger Logger) Option {
	return func(s *EntityStore) error {
		s.logger = logger
		return nil
	}
}

// WithTablePrefix prepends a prefix to every entity table name, so several
// deployments can share one database.
func WithTablePrefix(prefix string) Option {
	return func(s *EntityStore) error {
		for _, r := range prefix {
			if r == ' ' || r == '\t' || r == '\n' {
				return ErrInvalidTablePrefix
			}
		}

		s.tablePrefix = prefix

		return nil
	}
}
