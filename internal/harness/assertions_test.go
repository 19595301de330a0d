package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/touchstate/internal/touch"
)

func ptr[T any](v T) *T { return &v }

func sampleTrace() FrameTrace {
	return FrameTrace{
		Frame:  4,
		Events: 2,
		Active: []touch.ActiveTouch{
			{ID: 1, StartX: 0, StartY: 0, CurX: 3, CurY: 4},
			{ID: 2, StartX: 10, StartY: 10, CurX: 10, CurY: 10},
		},
		JustPressed:   []uint64{2},
		JustReleased:  []uint64{},
		JustCancelled: []uint64{5},
	}
}

func TestCheckFrame_NilExpect(t *testing.T) {
	assert.Empty(t, checkFrame(0, nil, sampleTrace()))

	failing := sampleTrace()
	failing.Error = "ORPHAN_MOVE"
	failures := checkFrame(4, nil, failing)
	require.Len(t, failures, 1)
	assert.Equal(t, "frame 4: error: expected no error, got ORPHAN_MOVE", failures[0].Error())
}

func TestCheckFrame_AllMatch(t *testing.T) {
	expect := &Expect{
		Active: &[]ActiveExpect{
			{ID: 2, StartX: ptr(10.0)},
			{ID: 1, DX: ptr(3.0), DY: ptr(4.0), CurX: ptr(3.0)},
		},
		JustPressed:   &[]uint64{2},
		JustReleased:  &[]uint64{},
		JustCancelled: &[]uint64{5},
	}

	assert.Empty(t, checkFrame(4, expect, sampleTrace()))
}

func TestCheckFrame_Mismatches(t *testing.T) {
	expect := &Expect{
		Active: &[]ActiveExpect{
			{ID: 1, DX: ptr(2.0)},
			{ID: 3},
		},
		JustReleased: &[]uint64{2},
		Error:        "ORPHAN_MOVE",
	}

	failures := checkFrame(4, expect, sampleTrace())

	var msgs []string
	for _, f := range failures {
		msgs = append(msgs, f.Error())
	}
	assert.Equal(t, []string{
		"frame 4: error: expected ORPHAN_MOVE, got no error",
		"frame 4: active: expected [1 3], got [1 2]",
		"frame 4: active[1].dx: expected 2, got 3",
		"frame 4: just_released: expected [2], got []",
	}, msgs)
}

func TestCheckFrame_IDOrderIgnored(t *testing.T) {
	trace := FrameTrace{
		Active:        []touch.ActiveTouch{},
		JustPressed:   []uint64{1, 2, 3},
		JustReleased:  []uint64{},
		JustCancelled: []uint64{},
	}
	expect := &Expect{JustPressed: &[]uint64{3, 1, 2}}

	assert.Empty(t, checkFrame(0, expect, trace))
}

func TestAssertionError_Fields(t *testing.T) {
	err := &AssertionError{Frame: 2, Field: "just_pressed", Expected: "[1]", Actual: "[]"}
	assert.Equal(t, "frame 2: just_pressed: expected [1], got []", err.Error())
}
