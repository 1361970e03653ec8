package process

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock. History timestamps come from this
// clock, so tests can pin them.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}
