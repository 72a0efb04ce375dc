package bucket

import (
	"time"

	"github.com/Nomadcxx/jellybucket/internal/logging"
)

type settings struct {
	extrapolate bool
	currentYear func() int
	alphaRegex  map[string]string
	logger      *logging.Logger
}

// Option configures a classifier.
type Option func(*settings)

// WithExtrapolate enables synthesizing buckets for years that no configured
// bucket covers. Alphabetic classifiers ignore it.
func WithExtrapolate(enabled bool) Option {
	return func(s *settings) {
		s.extrapolate = enabled
	}
}

// WithCurrentYear sets the source of "now" used to close the last open
// year bucket. A nil function keeps the wall clock.
func WithCurrentYear(fn func() int) Option {
	return func(s *settings) {
		if fn != nil {
			s.currentYear = fn
		}
	}
}

// WithFixedYear pins the current year, mostly useful in tests.
func WithFixedYear(year int) Option {
	return WithCurrentYear(func() int { return year })
}

// WithAlphaRegex maps alphabetic bucket labels to regular expressions that
// replace the label's own range when matching.
func WithAlphaRegex(patterns map[string]string) Option {
	return func(s *settings) {
		s.alphaRegex = patterns
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logging.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		currentYear: func() int { return time.Now().Year() },
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
