package session

import "time"

// Clock abstracts time.Now so keepalive timing can be driven by a
// synthetic clock in tests (spec.md §8: "with keepalive_idle = 0.1s... the
// session transitions to Closed within 0.2s + ε").
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
