package source

import (
	"time"

	"github.com/okian/cosmicboard/pkg/logger"
)

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithFetcher replaces the fetch primitive used for every endpoint.
func WithFetcher(f Fetcher) Option {
	return func(s *Source) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithAttemptTimeout bounds each endpoint attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.attemptTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the source.
func WithLogger(l logger.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}
