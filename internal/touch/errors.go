package touch

import (
	"errors"
	"fmt"
)

// ReducerErrorCode categorizes reducer errors.
type ReducerErrorCode string

const (
	// ErrCodeOrphanMove indicates a Moved event for a finger that is not
	// down. The event source delivered an impossible phase ordering.
	ErrCodeOrphanMove ReducerErrorCode = "ORPHAN_MOVE"

	// ErrCodeUnknownPhase indicates an event whose phase is not one of the
	// four named phases.
	ErrCodeUnknownPhase ReducerErrorCode = "UNKNOWN_PHASE"
)

// ReducerError is a contract violation detected in an event batch.
//
// The update that produced it was rejected as a whole; the State is
// exactly as it was before the call.
type ReducerError struct {
	// Code identifies the error category.
	Code ReducerErrorCode

	// Message is a human-readable description.
	Message string

	// ID is the offending finger id.
	ID uint64

	// Index is the position of the offending event within the batch.
	Index int

	// Seq is the queue sequence number of the offending event, or 0 when
	// the batch did not come from a Queue.
	Seq int64
}

// Error implements the error interface.
func (e *ReducerError) Error() string {
	if e.Seq != 0 {
		return fmt.Sprintf("%s: %s (id=%d, index=%d, seq=%d)", e.Code, e.Message, e.ID, e.Index, e.Seq)
	}
	return fmt.Sprintf("%s: %s (id=%d, index=%d)", e.Code, e.Message, e.ID, e.Index)
}

// IsOrphanMove reports whether err is an orphan move error.
// Uses errors.As to handle wrapped errors.
func IsOrphanMove(err error) bool {
	var re *ReducerError
	if errors.As(err, &re) {
		return re.Code == ErrCodeOrphanMove
	}
	return false
}

// IsUnknownPhase reports whether err is an unknown phase error.
func IsUnknownPhase(err error) bool {
	var re *ReducerError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnknownPhase
	}
	return false
}

// NewOrphanMoveError creates a ReducerError for a Moved event with no
// active touch.
func NewOrphanMoveError(id uint64, index int) *ReducerError {
	return &ReducerError{
		Code:    ErrCodeOrphanMove,
		Message: "moved event for a finger that is not down",
		ID:      id,
		Index:   index,
	}
}

// NewUnknownPhaseError creates a ReducerError for an invalid phase value.
func NewUnknownPhaseError(id uint64, index int, phase TouchPhase) *ReducerError {
	return &ReducerError{
		Code:    ErrCodeUnknownPhase,
		Message: fmt.Sprintf("unknown phase %s", phase),
		ID:      id,
		Index:   index,
	}
}
