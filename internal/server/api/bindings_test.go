package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a Store backed by a temporary database.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func createTestBinding(t *testing.T, handler *BindingHandler, label string) bindingResponse {
	t.Helper()

	body, _ := json.Marshal(createBindingRequest{
		Label:      label,
		PluginName: "media-control",
		ActionName: "play_pause",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created bindingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return created
}

func TestBindingHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	created := createTestBinding(t, handler, "open_palm")

	if created.ID == "" {
		t.Error("expected server-assigned id")
	}
	if created.Label != "open_palm" {
		t.Errorf("expected label 'open_palm', got %q", created.Label)
	}
	if !created.Enabled {
		t.Error("new binding should be enabled")
	}
	if string(created.Config) != "{}" {
		t.Errorf("expected default config {}, got %s", created.Config)
	}
}

func TestBindingHandler_Create_InvalidLabel(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	tests := []struct {
		name  string
		label string
	}{
		{name: "empty label", label: ""},
		{name: "unrecognized label", label: "wave"},
		{name: "unknown label rejected", label: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(createBindingRequest{
				Label:      tt.label,
				PluginName: "media-control",
				ActionName: "play_pause",
			})

			req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestBindingHandler_Create_MissingFields(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	body, _ := json.Marshal(createBindingRequest{Label: "fist"})

	req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestBindingHandler_Create_DuplicateLabel(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	createTestBinding(t, handler, "peace")

	body, _ := json.Marshal(createBindingRequest{
		Label:      "peace",
		PluginName: "media-control",
		ActionName: "next_track",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestBindingHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	createTestBinding(t, handler, "fist")
	createTestBinding(t, handler, "pointing")

	req := httptest.NewRequest(http.MethodGet, "/api/bindings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listBindingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Bindings) != 2 {
		t.Errorf("expected 2 bindings, got %d", len(response.Bindings))
	}
}

func TestBindingHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	created := createTestBinding(t, handler, "rock_on")

	req := httptest.NewRequest(http.MethodGet, "/api/bindings/"+created.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got bindingResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("expected id %q, got %q", created.ID, got.ID)
	}
	if got.Label != "rock_on" {
		t.Errorf("expected label 'rock_on', got %q", got.Label)
	}
}

func TestBindingHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/bindings/no-such-id", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestBindingHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	created := createTestBinding(t, handler, "thumbs_up")

	disabled := false
	body, _ := json.Marshal(updateBindingRequest{
		ActionName: "volume_up",
		Enabled:    &disabled,
	})

	req := httptest.NewRequest(http.MethodPut, "/api/bindings/"+created.ID, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var updated bindingResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if updated.ActionName != "volume_up" {
		t.Errorf("expected action 'volume_up', got %q", updated.ActionName)
	}
	if updated.Enabled {
		t.Error("expected binding to be disabled")
	}
	if updated.Label != "thumbs_up" {
		t.Errorf("label should be unchanged, got %q", updated.Label)
	}
}

func TestBindingHandler_Update_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	body, _ := json.Marshal(updateBindingRequest{ActionName: "volume_up"})

	req := httptest.NewRequest(http.MethodPut, "/api/bindings/no-such-id", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestBindingHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	created := createTestBinding(t, handler, "ok_sign")

	req := httptest.NewRequest(http.MethodDelete, "/api/bindings/"+created.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	// Second delete reports not found
	req = httptest.NewRequest(http.MethodDelete, "/api/bindings/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestBindingHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewBindingHandler(s)

	req := httptest.NewRequest(http.MethodPatch, "/api/bindings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
