package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/touchstate/internal/touch"
)

// Expect describes the snapshot expected after a frame.
// Nil fields are not checked.
type Expect struct {
	Active        *[]ActiveExpect `yaml:"active,omitempty"`
	JustPressed   *[]uint64       `yaml:"just_pressed,omitempty"`
	JustReleased  *[]uint64       `yaml:"just_released,omitempty"`
	JustCancelled *[]uint64       `yaml:"just_cancelled,omitempty"`

	// Error is the expected reducer error code, empty for success.
	Error string `yaml:"error,omitempty"`
}

// ActiveExpect matches one active touch. Only the coordinates that are
// set are compared.
type ActiveExpect struct {
	ID     uint64   `yaml:"id"`
	StartX *float64 `yaml:"start_x,omitempty"`
	StartY *float64 `yaml:"start_y,omitempty"`
	CurX   *float64 `yaml:"cur_x,omitempty"`
	CurY   *float64 `yaml:"cur_y,omitempty"`
	DX     *float64 `yaml:"dx,omitempty"`
	DY     *float64 `yaml:"dy,omitempty"`
}

// AssertionError is returned when a frame does not match its expectation.
type AssertionError struct {
	Frame    int    // Frame index
	Field    string // Expect field, e.g. "just_pressed" or "active[1].dx"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("frame %d: %s: expected %s, got %s", e.Frame, e.Field, e.Expected, e.Actual)
}

// checkFrame compares one frame trace against its expectation and returns
// every mismatch.
func checkFrame(frame int, expect *Expect, trace FrameTrace) []*AssertionError {
	var failures []*AssertionError
	fail := func(field, expected, actual string) {
		failures = append(failures, &AssertionError{
			Frame:    frame,
			Field:    field,
			Expected: expected,
			Actual:   actual,
		})
	}

	wantErr := ""
	if expect != nil {
		wantErr = expect.Error
	}
	if trace.Error != wantErr {
		fail("error", describeError(wantErr), describeError(trace.Error))
	}

	if expect == nil {
		return failures
	}

	if expect.Active != nil {
		checkActive(*expect.Active, trace.Active, fail)
	}
	if expect.JustPressed != nil {
		checkIDs("just_pressed", *expect.JustPressed, trace.JustPressed, fail)
	}
	if expect.JustReleased != nil {
		checkIDs("just_released", *expect.JustReleased, trace.JustReleased, fail)
	}
	if expect.JustCancelled != nil {
		checkIDs("just_cancelled", *expect.JustCancelled, trace.JustCancelled, fail)
	}

	return failures
}

func checkIDs(field string, want, got []uint64, fail func(field, expected, actual string)) {
	sorted := slices.Clone(want)
	slices.Sort(sorted)
	if !slices.Equal(sorted, got) {
		fail(field, formatIDs(sorted), formatIDs(got))
	}
}

func checkActive(want []ActiveExpect, got []touch.ActiveTouch, fail func(field, expected, actual string)) {
	wantIDs := make([]uint64, len(want))
	for i, w := range want {
		wantIDs[i] = w.ID
	}
	gotIDs := make([]uint64, len(got))
	byID := make(map[uint64]touch.ActiveTouch, len(got))
	for i, t := range got {
		gotIDs[i] = t.ID
		byID[t.ID] = t
	}

	checkIDs("active", wantIDs, gotIDs, fail)

	for _, w := range want {
		t, ok := byID[w.ID]
		if !ok {
			continue
		}
		coords := []struct {
			name string
			want *float64
			got  float64
		}{
			{"start_x", w.StartX, t.StartX},
			{"start_y", w.StartY, t.StartY},
			{"cur_x", w.CurX, t.CurX},
			{"cur_y", w.CurY, t.CurY},
			{"dx", w.DX, t.DX()},
			{"dy", w.DY, t.DY()},
		}
		for _, c := range coords {
			if c.want != nil && *c.want != c.got {
				fail(fmt.Sprintf("active[%d].%s", w.ID, c.name), fmt.Sprint(*c.want), fmt.Sprint(c.got))
			}
		}
	}
}

func formatIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func describeError(code string) string {
	if code == "" {
		return "no error"
	}
	return code
}
