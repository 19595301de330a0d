// Package touch folds a per-frame stream of touch-contact events into a
// queryable snapshot of which fingers are down and which fingers changed
// state during the most recent frame.
//
// ARCHITECTURE:
//
// Producers (platform callbacks, test drivers) push TouchInput values into
// a Queue from any goroutine. Once per frame the host calls Reducer.Step,
// which drains the queue and applies the batch to a host-owned *State.
// Hosts that already own a batch call Update directly.
//
// Frame Processing:
//  1. Clear the just-pressed, just-released and just-cancelled sets
//  2. Validate the batch against the current active set
//  3. Apply each event in arrival order
//
// A Moved event for a finger that is not down is an orphan move. The
// default policy rejects the whole batch with a *ReducerError: the active
// touches are left untouched and the just-* sets stay empty for that
// frame. WithOrphanMovePolicy(OrphanMoveDrop) skips the event instead. A
// single reducer never mixes the two.
//
// Ownership:
//   - State is owned by the host and passed explicitly; there is no global
//   - Only the reducer mutates State; readers use the accessor methods
//   - Reducer calls must be serialized; the reducer never blocks
//   - Queue is safe for concurrent Push; exactly one goroutine drains it
package touch
