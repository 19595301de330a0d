package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetSession returns the session with the given id.
// Returns ErrSessionNotFound (wrapped) if it does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, frames FROM sessions WHERE id = ?
	`, id).Scan(&sess.ID, &sess.Name, &sess.Frames)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// ListSessions returns every session with its event count, ordered by id
// (creation order for UUIDv7 ids).
//
// Returns an empty slice (not nil) if the store has no sessions.
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.frames, COUNT(e.seq)
		FROM sessions s
		LEFT JOIN touch_events e ON e.session_id = s.id
		GROUP BY s.id, s.name, s.frames
		ORDER BY s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Frames, &info.Events); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// FindSessionsByName returns the sessions whose normalized name equals name,
// ordered by id.
func (s *Store) FindSessionsByName(ctx context.Context, name string) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, frames FROM sessions
		WHERE name = ?
		ORDER BY id COLLATE BINARY ASC
	`, NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.Frames); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// ResolveSession looks a session up by id, then by name. When several
// sessions share the name the most recent one (largest id) wins.
func (s *Store) ResolveSession(ctx context.Context, ref string) (Session, error) {
	sess, err := s.GetSession(ctx, ref)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return Session{}, err
	}

	byName, err := s.FindSessionsByName(ctx, ref)
	if err != nil {
		return Session{}, err
	}
	if len(byName) == 0 {
		return Session{}, fmt.Errorf("resolve session %q: %w", ref, ErrSessionNotFound)
	}
	return byName[len(byName)-1], nil
}
