package touch

import "slices"

// ActiveTouch is a finger that is currently down.
//
// StartX/StartY are the coordinates of the Started event. CurX/CurY are
// the coordinates of the most recent Moved event, or the start point if
// the finger has not moved.
type ActiveTouch struct {
	ID     uint64  `json:"id"`
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	CurX   float64 `json:"cur_x"`
	CurY   float64 `json:"cur_y"`
}

// DX returns the horizontal distance moved since touch-down.
func (t ActiveTouch) DX() float64 {
	return t.CurX - t.StartX
}

// DY returns the vertical distance moved since touch-down.
func (t ActiveTouch) DY() float64 {
	return t.CurY - t.StartY
}

// State is the touch snapshot produced by the reducer.
//
// The just-* sets describe the most recently completed update only; they
// are cleared at the start of every update and never accumulate.
//
// INVARIANTS (after every successful update):
//   - an id in the released or cancelled set is not active
//   - the pressed set holds exactly the ids that received Started during
//     the update (unless the reducer uses legacy press tracking)
//
// Only the reducer writes to a State. Everything else reads through the
// accessor methods, which return copies.
type State struct {
	active        map[uint64]ActiveTouch
	justPressed   map[uint64]struct{}
	justReleased  map[uint64]struct{}
	justCancelled map[uint64]struct{}
}

// NewState returns an empty snapshot.
func NewState() *State {
	return &State{
		active:        make(map[uint64]ActiveTouch),
		justPressed:   make(map[uint64]struct{}),
		justReleased:  make(map[uint64]struct{}),
		justCancelled: make(map[uint64]struct{}),
	}
}

// init lazily allocates maps so that a zero State is usable.
func (s *State) init() {
	if s.active == nil {
		s.active = make(map[uint64]ActiveTouch)
	}
	if s.justPressed == nil {
		s.justPressed = make(map[uint64]struct{})
	}
	if s.justReleased == nil {
		s.justReleased = make(map[uint64]struct{})
	}
	if s.justCancelled == nil {
		s.justCancelled = make(map[uint64]struct{})
	}
}

// Active returns the active touch for id.
func (s *State) Active(id uint64) (ActiveTouch, bool) {
	t, ok := s.active[id]
	return t, ok
}

// ActiveTouches returns every active touch ordered by id.
func (s *State) ActiveTouches() []ActiveTouch {
	out := make([]ActiveTouch, 0, len(s.active))
	for _, id := range sortedKeys(s.active) {
		out = append(out, s.active[id])
	}
	return out
}

// ActiveCount returns the number of fingers currently down.
func (s *State) ActiveCount() int {
	return len(s.active)
}

// JustPressed reports whether id went down during the last update.
func (s *State) JustPressed(id uint64) bool {
	_, ok := s.justPressed[id]
	return ok
}

// JustReleased reports whether id lifted during the last update.
func (s *State) JustReleased(id uint64) bool {
	_, ok := s.justReleased[id]
	return ok
}

// JustCancelled reports whether id was cancelled during the last update.
func (s *State) JustCancelled(id uint64) bool {
	_, ok := s.justCancelled[id]
	return ok
}

// JustPressedIDs returns the ids pressed during the last update, sorted.
func (s *State) JustPressedIDs() []uint64 {
	return sortedKeys(s.justPressed)
}

// JustReleasedIDs returns the ids released during the last update, sorted.
func (s *State) JustReleasedIDs() []uint64 {
	return sortedKeys(s.justReleased)
}

// JustCancelledIDs returns the ids cancelled during the last update, sorted.
func (s *State) JustCancelledIDs() []uint64 {
	return sortedKeys(s.justCancelled)
}

// AnyJustPressed reports whether any finger went down during the last update.
func (s *State) AnyJustPressed() bool { return len(s.justPressed) > 0 }

// AnyJustReleased reports whether any finger lifted during the last update.
func (s *State) AnyJustReleased() bool { return len(s.justReleased) > 0 }

// AnyJustCancelled reports whether any finger was cancelled during the last update.
func (s *State) AnyJustCancelled() bool { return len(s.justCancelled) > 0 }

// clearTransitions empties the three just-* sets.
func (s *State) clearTransitions() {
	clear(s.justPressed)
	clear(s.justReleased)
	clear(s.justCancelled)
}

// sortedKeys returns the keys of m in ascending order. Never nil.
func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}
