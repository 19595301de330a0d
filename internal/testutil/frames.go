package testutil

import (
	"io"
	"log/slog"

	"github.com/roach88/touchstate/internal/touch"
)

// StampFrames stamps every event of every frame with consecutive seq
// numbers starting at 1, preserving frame boundaries.
func StampFrames(frames ...[]touch.TouchInput) [][]touch.Stamped {
	clock := touch.NewClock()
	out := make([][]touch.Stamped, len(frames))
	for i, frame := range frames {
		out[i] = make([]touch.Stamped, 0, len(frame))
		for _, in := range frame {
			out[i] = append(out[i], touch.Stamped{Seq: clock.Next(), Input: in})
		}
	}
	return out
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
