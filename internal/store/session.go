package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session represents one detection session: the lifetime of a single
// camera-to-engine pipeline run.
type Session struct {
	ID        string
	StartedAt time.Time
	StoppedAt *time.Time
}

// SessionRepository provides operations for detection sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new open session.
func (r *SessionRepository) Start(sess *Session) error {
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		sess.ID, sess.StartedAt,
	)
	return err
}

// Stop marks a session as stopped at the given time.
func (r *SessionRepository) Stop(id string, stoppedAt time.Time) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET stopped_at = ? WHERE id = ?`,
		stoppedAt, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var stoppedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, started_at, stopped_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.StartedAt, &stoppedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if stoppedAt.Valid {
		sess.StoppedAt = &stoppedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, stopped_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var stoppedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &sess.StartedAt, &stoppedAt); err != nil {
			return nil, err
		}

		if stoppedAt.Valid {
			sess.StoppedAt = &stoppedAt.Time
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
