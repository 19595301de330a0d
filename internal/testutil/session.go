package testutil

import (
	"fmt"
	"sync"
)

// FixedSessionGenerator returns predetermined session ids for tests.
//
// With no ids configured it generates "test-session-0001",
// "test-session-0002", ... so golden output stays byte-identical.
//
// Thread-safety: FixedSessionGenerator is safe for concurrent use.
type FixedSessionGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedSessionGenerator creates a generator that returns ids in order.
//
// Panics from Generate if configured ids are exhausted; this catches tests
// that create more sessions than they expect.
func NewFixedSessionGenerator(ids ...string) *FixedSessionGenerator {
	return &FixedSessionGenerator{ids: ids}
}

// Generate returns the next session id.
//
// Implements store.SessionIDGenerator.
func (g *FixedSessionGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if len(g.ids) == 0 {
		return fmt.Sprintf("test-session-%04d", g.idx)
	}
	if g.idx > len(g.ids) {
		panic("FixedSessionGenerator: all ids exhausted")
	}
	return g.ids[g.idx-1]
}
