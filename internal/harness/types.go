package harness

import (
	"github.com/roach88/touchstate/internal/touch"
)

// FrameTrace is the snapshot observed after one frame.
type FrameTrace struct {
	Frame         int                 `json:"frame"`
	Events        int                 `json:"events"`
	Active        []touch.ActiveTouch `json:"active"`
	JustPressed   []uint64            `json:"just_pressed"`
	JustReleased  []uint64            `json:"just_released"`
	JustCancelled []uint64            `json:"just_cancelled"`

	// Error is the reducer error code when the frame was rejected.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Trace holds one entry per frame, in frame order.
	Trace []FrameTrace `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []FrameTrace{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed returns the number of frames rejected by the reducer.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Trace {
		if f.Error != "" {
			n++
		}
	}
	return n
}
