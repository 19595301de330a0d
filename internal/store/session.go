package store

import (
	"errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches an id or name.
var ErrSessionNotFound = errors.New("session not found")

// Session describes one recorded touch stream.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Frames int    `json:"frames"`
}

// SessionInfo is a Session with its event count, as listed by ListSessions.
type SessionInfo struct {
	Session
	Events int `json:"events"`
}

// SessionIDGenerator generates unique session ids.
// Implemented by UUIDv7Generator (production) and
// testutil.FixedSessionGenerator (tests).
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so listing
// sessions by id lists them in creation order.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
