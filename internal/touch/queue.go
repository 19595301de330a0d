package touch

import "sync"

// Queue buffers raw touch events between the platform and the reducer.
//
// Push may be called from any goroutine (input callbacks, replay drivers).
// Drain is called by exactly one consumer, normally Reducer.Step, once per
// frame. Every event is stamped with a sequence number from the queue's
// own Clock on arrival, so arrival order is preserved across fingers and
// seqs are strictly increasing within one queue.
//
// Drain hands over everything pending and empties the buffer, so an event
// can only be consumed once.
type Queue struct {
	mu     sync.Mutex
	clock  *Clock
	events []Stamped
	closed bool
}

// NewQueue creates an empty queue with a fresh clock.
func NewQueue() *Queue {
	return &Queue{
		clock:  NewClock(),
		events: make([]Stamped, 0, 32),
	}
}

// Push appends an event in arrival order.
// Returns false if the queue is closed.
func (q *Queue) Push(in TouchInput) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	// Stamp under the lock so seq order matches slice order.
	q.events = append(q.events, Stamped{Seq: q.clock.Next(), Input: in})
	return true
}

// Drain removes and returns every pending event in arrival order.
// Returns nil if nothing is pending.
func (q *Queue) Drain() []Stamped {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	out := q.events
	q.events = make([]Stamped, 0, cap(out))
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close stops the queue from accepting events. Pending events remain
// available to Drain.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
