package server

import (
	"sync"

	"github.com/pixnet/pixnet/internal/hash"
)

// sessionTable is a sharded map from session ID to its live connection,
// so concurrent connections don't contend on one global mutex (spec.md
// §5's cooperative-scheduling requirement applies per-session; the table
// itself must still be safe for concurrent Accept goroutines).
type sessionTable struct {
	shards []*sessionShard
}

type sessionShard struct {
	mu   sync.RWMutex
	byID map[[8]byte]*connHandler
}

func newSessionTable(shardCount int) *sessionTable {
	if shardCount < 1 {
		shardCount = 1
	}

	shards := make([]*sessionShard, shardCount)
	for i := range shards {
		shards[i] = &sessionShard{byID: make(map[[8]byte]*connHandler)}
	}

	return &sessionTable{shards: shards}
}

func (t *sessionTable) shardFor(id [8]byte) *sessionShard {
	idx := hash.Bytes(id[:]) % uint64(len(t.shards))

	return t.shards[idx]
}

func (t *sessionTable) put(id [8]byte, h *connHandler) {
	shard := t.shardFor(id)
	shard.mu.Lock()
	shard.byID[id] = h
	shard.mu.Unlock()
}

func (t *sessionTable) remove(id [8]byte) {
	shard := t.shardFor(id)
	shard.mu.Lock()
	delete(shard.byID, id)
	shard.mu.Unlock()
}

func (t *sessionTable) get(id [8]byte) (*connHandler, bool) {
	shard := t.shardFor(id)
	shard.mu.RLock()
	h, ok := shard.byID[id]
	shard.mu.RUnlock()

	return h, ok
}

// count returns the number of currently tracked sessions, used for
// metrics/diagnostics.
func (t *sessionTable) count() int {
	n := 0
	for _, shard := range t.shards {
		shard.mu.RLock()
		n += len(shard.byID)
		shard.mu.RUnlock()
	}

	return n
}

// all returns every active session snapshot, used to broadcast a fresh
// page to connected clients.
func (t *sessionTable) all() []*connHandler {
	var out []*connHandler
	for _, shard := range t.shards {
		shard.mu.RLock()
		for _, h := range shard.byID {
			out = append(out, h)
		}
		shard.mu.RUnlock()
	}

	return out
}
