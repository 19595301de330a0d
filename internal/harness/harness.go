package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/touchstate/internal/touch"
)

// Harness drives a reducer one frame at a time the way a host would:
// events are pushed onto a queue and drained by Reducer.Step.
//
// A Harness is not safe for concurrent use.
type Harness struct {
	queue   *touch.Queue
	reducer *touch.Reducer
	state   *touch.State
	logger  *slog.Logger
	frame   int
}

// New creates a harness with a fresh queue and an empty snapshot.
// opts configure the reducer.
func New(logger *slog.Logger, opts ...touch.Option) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]touch.Option{touch.WithLogger(logger)}, opts...)
	return &Harness{
		queue:   touch.NewQueue(),
		reducer: touch.NewReducer(opts...),
		state:   touch.NewState(),
		logger:  logger,
	}
}

// State returns the harness snapshot. Callers must not retain it across
// frames if they need a stable view; use Clone.
func (h *Harness) State() *touch.State {
	return h.state
}

// Reducer returns the reducer under test.
func (h *Harness) Reducer() *touch.Reducer {
	return h.reducer
}

// Frame runs one frame and returns the resulting trace entry.
//
// A reducer error does not stop the harness; it is recorded in the trace
// and the snapshot stays as it was before the frame.
func (h *Harness) Frame(events []touch.TouchInput) FrameTrace {
	for _, ev := range events {
		h.queue.Push(ev)
	}

	err := h.reducer.Step(h.queue, h.state)

	trace := FrameTrace{
		Frame:         h.frame,
		Events:        len(events),
		Active:        h.state.ActiveTouches(),
		JustPressed:   h.state.JustPressedIDs(),
		JustReleased:  h.state.JustReleasedIDs(),
		JustCancelled: h.state.JustCancelledIDs(),
	}
	if err != nil {
		trace.Error = ErrorCode(err)
		h.logger.Debug("frame rejected", "frame", h.frame, "error", err)
	}
	h.frame++
	return trace
}

// Close releases the harness queue.
func (h *Harness) Close() {
	h.queue.Close()
}

// Play runs every frame through a fresh harness and returns the traces.
func Play(frames [][]touch.TouchInput, logger *slog.Logger, opts ...touch.Option) []FrameTrace {
	h := New(logger, opts...)
	defer h.Close()

	traces := make([]FrameTrace, 0, len(frames))
	for _, events := range frames {
		traces = append(traces, h.Frame(events))
	}
	return traces
}

// Inputs strips sequence numbers from recorded frames.
func Inputs(frames [][]touch.Stamped) [][]touch.TouchInput {
	out := make([][]touch.TouchInput, len(frames))
	for i, frame := range frames {
		out[i] = make([]touch.TouchInput, len(frame))
		for j, st := range frame {
			out[i][j] = st.Input
		}
	}
	return out
}

// ErrorCode returns the reducer error code of err, or its message for any
// other error.
func ErrorCode(err error) string {
	var re *touch.ReducerError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	return err.Error()
}

// Run executes a scenario and returns the result.
//
// The returned error is reserved for scenarios that cannot run at all
// (invalid options); failed expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with an explicit reducer logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	opts, err := scenario.Options.ReducerOptions()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h := New(logger, opts...)
	defer h.Close()

	result := NewResult()
	for i, frame := range scenario.Frames {
		trace := h.Frame(frame.Events)
		result.Trace = append(result.Trace, trace)

		for _, failure := range checkFrame(i, frame.Expect, trace) {
			result.AddError(failure.Error())
		}
	}

	return result, nil
}
