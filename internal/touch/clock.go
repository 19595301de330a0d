package touch

import "sync/atomic"

// Clock is a monotonic logical clock used to stamp queued touch events.
//
// Sequence numbers give every event a total arrival order independent of
// wall time. Each Queue owns one Clock, so seqs are only comparable
// within a single queue.
//
// Thread-safety: Clock is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
