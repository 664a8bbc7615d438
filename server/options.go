package server

import (
	"log/slog"
	"time"

	"github.com/pixnet/pixnet/internal/options"
)

// DefaultAddr is the PIXNET default TCP port (spec.md §6.1).
const DefaultAddr = ":7621"

// DefaultMaxFrameSize bounds a single inbound wire message (spec.md §4.6).
const DefaultMaxFrameSize = 16 * 1024 * 1024

// DefaultRateLimit is the default number of inbound messages a session may
// send per second before RATE_LIMITED kicks in (spec.md §4.6).
const DefaultRateLimit = 200

// Option configures a Server.
type Option = options.Option[*Server]

// WithAddr overrides the listen address (default DefaultAddr).
func WithAddr(addr string) Option {
	return options.NoError(func(s *Server) { s.addr = addr })
}

// WithLogger overrides the server's structured logger. Components attach
// their own "component" attribute, matching the convention the rest of
// this codebase's ambient logging follows.
func WithLogger(log *slog.Logger) Option {
	return options.NoError(func(s *Server) { s.log = log })
}

// WithMaxFrameSize overrides the maximum inbound message size (default
// DefaultMaxFrameSize). A message larger than this is rejected and the
// connection is closed; no PIXERR carrying FRAME_TOO_LARGE is sent first.
func WithMaxFrameSize(n int) Option {
	return options.NoError(func(s *Server) { s.maxFrameSize = n })
}

// WithRateLimit overrides the per-session inbound message rate (messages
// per second) before RATE_LIMITED closes the session.
func WithRateLimit(perSecond int) Option {
	return options.NoError(func(s *Server) { s.rateLimit = perSecond })
}

// WithShardCount overrides the number of session-table shards (default
// 16). Sharding spreads lock contention across concurrent connections.
func WithShardCount(n int) Option {
	return options.NoError(func(s *Server) { s.shardCount = n })
}

// WithKeepaliveIdle and WithKeepaliveTimeout forward to every Session this
// server creates (spec.md §4.4).
func WithKeepaliveIdle(d time.Duration) Option {
	return options.NoError(func(s *Server) { s.keepaliveIdle = d })
}

func WithKeepaliveTimeout(d time.Duration) Option {
	return options.NoError(func(s *Server) { s.keepaliveTimeout = d })
}
