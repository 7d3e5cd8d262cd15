package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// EventHandler handles HTTP requests for emitted gesture events.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

type eventResponse struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	EmittedAt  string  `json:"emitted_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

func toEventResponse(e *store.Event) eventResponse {
	return eventResponse{
		ID:         e.ID,
		SessionID:  e.SessionID,
		Label:      e.Label,
		Confidence: e.Confidence,
		EmittedAt:  e.EmittedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeHTTP handles GET /api/events. The limit query parameter caps the
// number of returned events; session_id restricts to one session.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		events []*store.Event
		err    error
	)

	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		events, err = h.store.Events().ListBySession(sessionID)
	} else {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "Invalid limit")
				return
			}
		}
		events, err = h.store.Events().ListRecent(limit)
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, response)
}
