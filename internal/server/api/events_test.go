package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

func seedEvents(t *testing.T, s *store.Store, sessionID string, n int) {
	t.Helper()

	if err := s.Sessions().Start(&store.Session{ID: sessionID, StartedAt: time.Now()}); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	base := time.Now().Add(-time.Minute)
	for i := 0; i < n; i++ {
		err := s.Events().Insert(&store.Event{
			ID:         uuid.New().String(),
			SessionID:  sessionID,
			Label:      "open_palm",
			Confidence: 0.9,
			EmittedAt:  base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to insert event %d: %v", i, err)
		}
	}
}

func TestEventHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	seedEvents(t, s, "session-1", 3)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 3 {
		t.Errorf("expected 3 events, got %d", len(response.Events))
	}
	if response.Events[0].Label != "open_palm" {
		t.Errorf("expected label 'open_palm', got %q", response.Events[0].Label)
	}
}

func TestEventHandler_Limit(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	seedEvents(t, s, "session-1", 5)

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(response.Events))
	}
}

func TestEventHandler_InvalidLimit(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	for _, limit := range []string{"abc", "-1"} {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/events?limit=%s", limit), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: expected status %d, got %d", limit, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestEventHandler_BySession(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	seedEvents(t, s, "session-1", 2)
	seedEvents(t, s, "session-2", 4)

	req := httptest.NewRequest(http.MethodGet, "/api/events?session_id=session-2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 4 {
		t.Errorf("expected 4 events, got %d", len(response.Events))
	}
	for _, e := range response.Events {
		if e.SessionID != "session-2" {
			t.Errorf("expected session 'session-2', got %q", e.SessionID)
		}
	}
}

func TestEventHandler_Empty(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 0 {
		t.Errorf("expected empty event list, got %d", len(response.Events))
	}
}

func TestEventHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
