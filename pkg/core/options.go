package core

import (
	"time"

	"github.com/oneconcern/wit/pkg/snapshot"
	"go.uber.org/zap"
)

// Option sets options for a repository handle
type Option func(*Settings)

// Settings defines the collaborators of a repository handle
type Settings struct {
	logger *zap.Logger
	clock  func() time.Time
	ids    snapshot.IDGenerator
}

// WithLogger sets the logger for all operations. It defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Settings) {
		if logger == nil {
			s.logger = zap.NewNop()
			return
		}
		s.logger = logger
	}
}

// WithClock sets the source of commit timestamps. It defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Settings) {
		if clock == nil {
			s.clock = time.Now
			return
		}
		s.clock = clock
	}
}

// WithIDGenerator sets the source of new commit ids. It defaults to a time-seeded random generator.
func WithIDGenerator(ids snapshot.IDGenerator) Option {
	return func(s *Settings) {
		s.ids = ids
	}
}

func defaultSettings(opts []Option) Settings {
	s := Settings{
		logger: zap.NewNop(),
		clock:  time.Now,
	}
	for _, apply := range opts {
		apply(&s)
	}
	if s.ids == nil {
		s.ids = snapshot.DefaultIDGenerator()
	}
	return s
}
