package touch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// OrphanMovePolicy selects how a reducer reacts to a Moved event for a
// finger that is not down.
type OrphanMovePolicy int

const (
	// OrphanMoveFail rejects the whole batch with a *ReducerError and
	// leaves the State untouched. This is the default.
	OrphanMoveFail OrphanMovePolicy = iota
	// OrphanMoveDrop skips the offending event, logs it at WARN and
	// applies the rest of the batch. No touch is created.
	OrphanMoveDrop
)

func (p OrphanMovePolicy) String() string {
	switch p {
	case OrphanMoveFail:
		return "fail"
	case OrphanMoveDrop:
		return "drop"
	default:
		return fmt.Sprintf("OrphanMovePolicy(%d)", int(p))
	}
}

// ParseOrphanMovePolicy parses "fail" or "drop". The empty string selects
// the default policy.
func ParseOrphanMovePolicy(s string) (OrphanMovePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return OrphanMoveFail, nil
	case "drop":
		return OrphanMoveDrop, nil
	default:
		return OrphanMoveFail, fmt.Errorf("invalid orphan move policy %q: must be fail or drop", s)
	}
}

// Reducer applies per-frame event batches to a State.
//
// A Reducer owns the read cursor into its Queue: the sequence number of the
// last event it consumed. The cursor belongs to the queue most recently
// passed to Step; stepping a different queue rebinds it and restarts the
// cursor at that queue's first event. Calls must be serialized by the
// host; the reducer itself never blocks.
type Reducer struct {
	orphanPolicy OrphanMovePolicy
	legacyPress  bool
	logger       *slog.Logger
	queue        *Queue
	cursor       int64
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithOrphanMovePolicy sets the orphan move policy (default OrphanMoveFail).
func WithOrphanMovePolicy(p OrphanMovePolicy) Option {
	return func(r *Reducer) {
		r.orphanPolicy = p
	}
}

// WithLegacyPressTracking stops Started events from populating the
// just-pressed set. Only Ended and Cancelled then record transitions,
// matching older consumers that never read just-pressed.
func WithLegacyPressTracking() Option {
	return func(r *Reducer) {
		r.legacyPress = true
	}
}

// WithLogger sets the logger used for batch diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Reducer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReducer creates a reducer with the given options.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		orphanPolicy: OrphanMoveFail,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Update applies events to state using the default policy.
// See Reducer.Update.
func Update(events []TouchInput, state *State) error {
	return NewReducer().Update(events, state)
}

// OrphanMovePolicy returns the reducer's orphan move policy.
func (r *Reducer) OrphanMovePolicy() OrphanMovePolicy {
	return r.orphanPolicy
}

// LegacyPressTracking reports whether Started leaves just-pressed empty.
func (r *Reducer) LegacyPressTracking() bool {
	return r.legacyPress
}

// Cursor returns the sequence number of the last event consumed from the
// bound queue, or 0 before the first Step.
func (r *Reducer) Cursor() int64 {
	return r.cursor
}

// Update applies one frame's events, in arrival order, to state.
//
// The just-* sets are cleared first, so after Update they describe this
// batch only. An empty batch therefore just clears them.
//
// On a *ReducerError the batch is rejected as a whole: no event is applied
// and the active touches are left exactly as they were. The just-* sets
// are still cleared.
func (r *Reducer) Update(events []TouchInput, state *State) error {
	return r.apply(events, nil, state)
}

// Step drains q and applies the drained events as one frame.
//
// The cursor advances past every drained event even when the batch is
// rejected: a malformed batch is a producer bug, not something to retry.
func (r *Reducer) Step(q *Queue, state *State) error {
	if q == nil {
		return errors.New("step: nil queue")
	}
	if q != r.queue {
		if r.queue != nil {
			r.logger.Debug("touch reducer rebound to a new queue", "previous_cursor", r.cursor)
		}
		r.queue = q
		r.cursor = 0
	}

	batch := q.Drain()
	events := make([]TouchInput, 0, len(batch))
	seqs := make([]int64, 0, len(batch))
	for _, st := range batch {
		events = append(events, st.Input)
		seqs = append(seqs, st.Seq)
	}
	if n := len(batch); n > 0 {
		r.cursor = batch[n-1].Seq
	}

	return r.apply(events, seqs, state)
}

func (r *Reducer) apply(events []TouchInput, seqs []int64, state *State) error {
	if state == nil {
		return errors.New("update: nil state")
	}
	state.init()
	state.clearTransitions()

	if err := r.validate(events, seqs, state); err != nil {
		r.logger.Debug("touch batch rejected", "events", len(events), "error", err)
		return err
	}

	for i, ev := range events {
		switch ev.Phase {
		case PhaseStarted:
			// Last Started wins; a repeated id is overwritten.
			state.active[ev.ID] = ActiveTouch{
				ID:     ev.ID,
				StartX: ev.X,
				StartY: ev.Y,
				CurX:   ev.X,
				CurY:   ev.Y,
			}
			if !r.legacyPress {
				state.justPressed[ev.ID] = struct{}{}
			}

		case PhaseMoved:
			t, ok := state.active[ev.ID]
			if !ok {
				// Only reachable under OrphanMoveDrop; validate rejects it otherwise.
				r.logger.Warn("dropping orphan touch move", "id", ev.ID, "index", i)
				continue
			}
			t.CurX = ev.X
			t.CurY = ev.Y
			state.active[ev.ID] = t

		case PhaseEnded:
			delete(state.active, ev.ID)
			state.justReleased[ev.ID] = struct{}{}

		case PhaseCancelled:
			delete(state.active, ev.ID)
			state.justCancelled[ev.ID] = struct{}{}
		}
	}

	r.logger.Debug("touch batch applied",
		"events", len(events),
		"active", len(state.active),
		"pressed", len(state.justPressed),
		"released", len(state.justReleased),
		"cancelled", len(state.justCancelled),
	)
	return nil
}

// validate dry-runs the batch against the active set so that a rejected
// batch never leaves a partially applied state behind.
func (r *Reducer) validate(events []TouchInput, seqs []int64, state *State) error {
	// overlay records active-set changes made earlier in this batch
	var overlay map[uint64]bool
	isDown := func(id uint64) bool {
		if down, ok := overlay[id]; ok {
			return down
		}
		_, ok := state.active[id]
		return ok
	}
	mark := func(id uint64, down bool) {
		if overlay == nil {
			overlay = make(map[uint64]bool)
		}
		overlay[id] = down
	}

	for i, ev := range events {
		var err *ReducerError
		switch ev.Phase {
		case PhaseStarted:
			mark(ev.ID, true)
		case PhaseMoved:
			if r.orphanPolicy == OrphanMoveFail && !isDown(ev.ID) {
				err = NewOrphanMoveError(ev.ID, i)
			}
		case PhaseEnded, PhaseCancelled:
			mark(ev.ID, false)
		default:
			err = NewUnknownPhaseError(ev.ID, i, ev.Phase)
		}
		if err != nil {
			if seqs != nil {
				err.Seq = seqs[i]
			}
			return err
		}
	}
	return nil
}
