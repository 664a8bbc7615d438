package session

import (
	"time"

	"github.com/pixnet/pixnet/internal/options"
)

// Option configures a Session.
type Option = options.Option[*Session]

// WithKeepaliveIdle overrides the idle duration after which a PIXPNG probe
// is sent (default 15s, spec.md §4.4).
func WithKeepaliveIdle(d time.Duration) Option {
	return options.NoError(func(s *Session) {
		s.keepaliveIdle = d
	})
}

// WithKeepaliveTimeout overrides the duration a session waits for PIXPOG
// before closing with TIMEOUT (default 10s, spec.md §4.4).
func WithKeepaliveTimeout(d time.Duration) Option {
	return options.NoError(func(s *Session) {
		s.keepaliveTimeout = d
	})
}

// WithMismatchThreshold overrides the number of session_id mismatches at
// which the session is closed (spec.md §4.4: "logged, counted, not treated
// as protocol error unless repeated — configurable threshold"). The count
// is kept for the life of the session; a matching message does not reset
// it. Default is 5.
func WithMismatchThreshold(n int) Option {
	return options.NoError(func(s *Session) {
		s.mismatchThreshold = n
	})
}

// WithServerCapabilities sets the capability bits the server offers during
// negotiation (spec.md §4.4, §6.1).
func WithServerCapabilities(caps uint16) Option {
	return options.NoError(func(s *Session) {
		s.serverCapabilities = caps
	})
}

// WithClock overrides the Session's time source. Intended for tests that
// need deterministic keepalive timing (spec.md §8's keepalive property).
func WithClock(c Clock) Option {
	return options.NoError(func(s *Session) {
		s.clock = c
	})
}
