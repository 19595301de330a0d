package store

import (
	"context"
	"fmt"

	"github.com/roach88/touchstate/internal/touch"
)

// ReadFrames returns a session's events grouped by frame, in the order
// they were recorded (ORDER BY frame ASC, seq ASC).
//
// The result always has exactly Session.Frames entries; frames with no
// events are returned as empty (non-nil) slices so a replay still runs an
// update for them.
func (s *Store) ReadFrames(ctx context.Context, sessionID string) ([][]touch.Stamped, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}

	frames := make([][]touch.Stamped, sess.Frames)
	for i := range frames {
		frames[i] = []touch.Stamped{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, frame, phase, x, y, finger_id
		FROM touch_events
		WHERE session_id = ?
		ORDER BY frame ASC, seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev     touch.Stamped
			frame  int
			phase  string
			finger int64
		)
		if err := rows.Scan(&ev.Seq, &frame, &phase, &ev.Input.X, &ev.Input.Y, &finger); err != nil {
			return nil, fmt.Errorf("scan touch event: %w", err)
		}
		if frame >= len(frames) {
			return nil, fmt.Errorf("read frames: event seq %d in frame %d beyond session frame count %d", ev.Seq, frame, len(frames))
		}
		ev.Input.Phase, err = phaseFromColumn(phase)
		if err != nil {
			return nil, fmt.Errorf("read frames: seq %d: %w", ev.Seq, err)
		}
		ev.Input.ID = fingerFromColumn(finger)
		frames[frame] = append(frames[frame], ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate touch events: %w", err)
	}

	return frames, nil
}
