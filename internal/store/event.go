package store

import (
	"database/sql"
	"errors"
	"time"
)

// Event represents an emitted gesture event persisted for history and
// the events API. Raw landmarks are not stored; the event log is for
// review, not replay.
type Event struct {
	ID         string
	SessionID  string
	Label      string
	Confidence float64
	EmittedAt  time.Time
}

// EventRepository provides operations for the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends an event to the log.
func (r *EventRepository) Insert(e *Event) error {
	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, label, confidence, emitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Label, e.Confidence, e.EmittedAt,
	)
	return err
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}

	err := r.db.QueryRow(
		`SELECT id, session_id, label, confidence, emitted_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.SessionID, &e.Label, &e.Confidence, &e.EmittedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

// ListRecent retrieves the most recent events, newest first.
// A non-positive limit defaults to 50.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, label, confidence, emitted_at
		 FROM events ORDER BY emitted_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListBySession retrieves all events for one session, oldest first.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, label, confidence, emitted_at
		 FROM events WHERE session_id = ? ORDER BY emitted_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountByLabel returns how many events carry each label.
func (r *EventRepository) CountByLabel() (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT label, COUNT(*) FROM events GROUP BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		counts[label] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// DeleteBefore removes events emitted before the cutoff and returns
// how many rows were deleted.
func (r *EventRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE emitted_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Label, &e.Confidence, &e.EmittedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
