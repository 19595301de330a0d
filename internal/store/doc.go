// Package store provides SQLite-backed storage for recorded touch sessions.
//
// A session is an append-only log of touch events grouped into frames:
//   - sessions: one row per recording (id, name, frame count)
//   - touch_events: one row per event (session, seq, frame, phase, x, y, finger)
//
// # Ordering
//
// Events are stamped with a logical sequence number when recorded. All
// reads use ORDER BY frame ASC, seq ASC so a replay feeds the reducer the
// exact arrival order of the original run, regardless of wall time.
//
// # Identity
//
// Session ids are UUIDv7 strings (see SessionIDGenerator), so ordering
// sessions by id lists them in creation order. Session names are NFC
// normalized on write and lookup.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
