package store

import (
	"context"
	"fmt"

	"github.com/roach88/touchstate/internal/touch"
)

// WriteSession records a session and all of its frames in one transaction.
//
// frames[i] holds the events of frame i in arrival order; an empty frame is
// kept (it still counts towards Session.Frames). The session's Frames field
// is set from len(frames). Seq values must be strictly increasing across
// the whole session.
func (s *Store) WriteSession(ctx context.Context, sess Session, frames [][]touch.Stamped) (Session, error) {
	if sess.ID == "" {
		return Session{}, fmt.Errorf("write session: id is required")
	}
	sess.Name = NormalizeName(sess.Name)
	if sess.Name == "" {
		return Session{}, fmt.Errorf("write session: name is required")
	}
	sess.Frames = len(frames)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("write session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, name, frames)
		VALUES (?, ?, ?)
	`, sess.ID, sess.Name, sess.Frames); err != nil {
		return Session{}, fmt.Errorf("write session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO touch_events
		(session_id, seq, frame, phase, x, y, finger_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Session{}, fmt.Errorf("write session: prepare: %w", err)
	}
	defer stmt.Close()

	var lastSeq int64
	for frame, events := range frames {
		for _, ev := range events {
			if ev.Seq <= lastSeq {
				return Session{}, fmt.Errorf("write session: frame %d: seq %d not after %d", frame, ev.Seq, lastSeq)
			}
			lastSeq = ev.Seq

			phase, err := phaseToColumn(ev.Input.Phase)
			if err != nil {
				return Session{}, fmt.Errorf("write session: frame %d seq %d: %w", frame, ev.Seq, err)
			}

			if _, err := stmt.ExecContext(ctx,
				sess.ID,
				ev.Seq,
				frame,
				phase,
				ev.Input.X,
				ev.Input.Y,
				fingerToColumn(ev.Input.ID),
			); err != nil {
				return Session{}, fmt.Errorf("write session: frame %d seq %d: %w", frame, ev.Seq, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("write session: commit: %w", err)
	}

	return sess, nil
}

// DeleteSession removes a session and its events.
// Returns ErrSessionNotFound if the id does not exist.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrSessionNotFound)
	}
	return nil
}
