package store

import (
	"dltally/internal/platform/logger"
)

// Option configures a Store before any backend is opened; an error aborts Open
type Option func(*Store) error

// WithLogger routes pool, tracer and boot-guard logs to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}
