// Copyright © 2018 One Concern

package snapshot

import "go.uber.org/zap"

// Option for the snapshot store
type Option func(*Store)

// WithIDGenerator sets the source of new commit ids
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets a logger for the snapshot store
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxAttempts sets how many ids are drawn before giving up on collisions
func WithMaxAttempts(attempts int) Option {
	return func(s *Store) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
	}
}
