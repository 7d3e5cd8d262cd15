package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// TuningHandler exposes the engine tuning settings over HTTP.
// Changes take effect the next time the detection pipeline starts.
type TuningHandler struct {
	store *store.Store
}

// NewTuningHandler creates a new TuningHandler with the given store.
func NewTuningHandler(s *store.Store) *TuningHandler {
	return &TuningHandler{store: s}
}

// ServeHTTP handles GET and PUT requests to /api/tuning.
func (h *TuningHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get returns the stored values for every recognized tuning key.
// Keys still at their built-in defaults are omitted.
func (h *TuningHandler) get(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	tuning := make(map[string]string)
	for _, key := range store.TuningKeys {
		if value, ok := all[key]; ok {
			tuning[key] = value
		}
	}

	writeJSON(w, http.StatusOK, tuning)
}

// put stores the submitted tuning values. Unknown keys and
// non-numeric values are rejected before anything is written.
func (h *TuningHandler) put(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for key, value := range req {
		if !isTuningKey(key) {
			writeError(w, http.StatusBadRequest, "Unknown tuning key: "+key)
			return
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid value for "+key)
			return
		}
	}

	for key, value := range req {
		if err := h.store.Settings().Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store setting")
			return
		}
	}

	h.get(w, r)
}

func isTuningKey(key string) bool {
	for _, k := range store.TuningKeys {
		if k == key {
			return true
		}
	}
	return false
}
