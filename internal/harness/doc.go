// Package harness replays framed touch streams through a reducer and checks
// the resulting snapshots.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: tap_and_drag
//	description: "One finger goes down, drags, and lifts"
//	options:
//	  orphan_move: fail          # or drop
//	  legacy_press_tracking: false
//	frames:
//	  - events:
//	      - { phase: Started, id: 1, x: 0, y: 0 }
//	    expect:
//	      just_pressed: [1]
//	  - events:
//	      - { phase: Moved, id: 1, x: 3, y: 4 }
//	    expect:
//	      active:
//	        - { id: 1, dx: 3, dy: 4 }
//	      just_pressed: []
//	  - events: []
//	    expect:
//	      just_pressed: []
//
// Each entry of frames is one host frame: its events are pushed onto a
// touch.Queue and drained by a single Reducer.Step. An empty event list is
// still a frame; it clears the just-* sets.
//
// # Expectations
//
// Every expect field is optional. A field that is present is compared
// exactly:
//
//   - active: the full list of active touches, by id. Coordinates
//     (start_x, start_y, cur_x, cur_y, dx, dy) are only checked when given.
//   - just_pressed, just_released, just_cancelled: the full id set.
//   - error: the reducer error code for the frame (ORPHAN_MOVE,
//     UNKNOWN_PHASE). A frame without error must not fail.
//
// # Deterministic Testing
//
// Each run uses a fresh queue, clock and snapshot, so identical frames
// always produce identical traces. Traces are compared against golden files
// under testdata/golden with goldie.
package harness
