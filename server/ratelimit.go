package server

import (
	"sync"
	"time"
)

// tokenBucket is a minimal per-session inbound rate limiter (spec.md
// §4.6, §6.4's RATE_LIMITED). None of the example corpus ships a
// rate-limiting library, so this is a small hand-rolled bucket rather than
// an adapted dependency — see DESIGN.md.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	last       time.Time
	now        func() time.Time
}

func newTokenBucket(perSecond int, now func() time.Time) *tokenBucket {
	if now == nil {
		now = time.Now
	}
	rate := float64(perSecond)

	return &tokenBucket{
		tokens:     rate,
		maxTokens:  rate,
		refillRate: rate,
		last:       now(),
		now:        now,
	}
}

// Allow reports whether one message may be admitted now, consuming a
// token if so.
func (b *tokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := now.Sub(b.last).Seconds()
	b.last = now

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}

	if b.tokens < 1 {
		return false
	}

	b.tokens--

	return true
}
