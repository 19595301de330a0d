package touch

// TouchInput is a single raw touch event as delivered by the platform.
//
// ID is stable for the lifetime of one contact. Platforms may reuse an id
// for a later contact once the earlier one has ended.
type TouchInput struct {
	Phase TouchPhase `json:"phase" yaml:"phase" jsonschema:"required"`
	X     float64    `json:"x" yaml:"x" jsonschema:"required,description=Screen x coordinate"`
	Y     float64    `json:"y" yaml:"y" jsonschema:"required,description=Screen y coordinate"`
	ID    uint64     `json:"id" yaml:"id" jsonschema:"required,description=Platform finger identifier"`
}

// Started returns a Started event for finger id at (x, y).
func Started(id uint64, x, y float64) TouchInput {
	return TouchInput{Phase: PhaseStarted, X: x, Y: y, ID: id}
}

// Moved returns a Moved event for finger id at (x, y).
func Moved(id uint64, x, y float64) TouchInput {
	return TouchInput{Phase: PhaseMoved, X: x, Y: y, ID: id}
}

// Ended returns an Ended event for finger id at (x, y).
func Ended(id uint64, x, y float64) TouchInput {
	return TouchInput{Phase: PhaseEnded, X: x, Y: y, ID: id}
}

// Cancelled returns a Cancelled event for finger id at (x, y).
func Cancelled(id uint64, x, y float64) TouchInput {
	return TouchInput{Phase: PhaseCancelled, X: x, Y: y, ID: id}
}

// Stamped is a queued TouchInput with its arrival sequence number.
type Stamped struct {
	Seq   int64
	Input TouchInput
}
