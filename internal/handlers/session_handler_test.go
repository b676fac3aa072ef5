package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
)

func TestSessionHandler_Create(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/sessions", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, err := uuid.Parse(resp.SessionID); err != nil {
		t.Errorf("session id %q is not a UUID: %v", resp.SessionID, err)
	}
	if got := w.Header().Get(middleware.SessionHeader); got != resp.SessionID {
		t.Errorf("%s header = %q, want %q", middleware.SessionHeader, got, resp.SessionID)
	}
	if srv.sessions.Count() != 1 {
		t.Errorf("expected 1 live session, got %d", srv.sessions.Count())
	}
}

func TestSessionHandler_RequiresSession(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		sessionID  string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed id", "not-a-session", http.StatusNotFound},
		{"unknown id", uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, "/api/cart", tt.sessionID, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSessionHandler_EndAndResume(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)

	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "3", Quantity: intPtr(2)})

	w := srv.do(t, http.MethodDelete, "/api/sessions", id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("end: status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if srv.sessions.Count() != 0 {
		t.Fatalf("expected no live sessions, got %d", srv.sessions.Count())
	}

	// the cart snapshot outlives the session, so the id can be resumed
	w = srv.do(t, http.MethodGet, "/api/cart", id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resume: status = %d, want %d", w.Code, http.StatusOK)
	}
	view := decodeCart(t, w)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Errorf("expected resumed cart with 2 x item 3, got %+v", view.Items)
	}
}

func TestSessionHandler_EndWithDiscard(t *testing.T) {
	srv := newTestServer(t, nil)
	id := srv.newSession(t)

	srv.do(t, http.MethodPost, "/api/cart/items", id, AddItemRequest{MenuItemID: "3"})

	w := srv.do(t, http.MethodDelete, "/api/sessions?discard=true", id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("discard: status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = srv.do(t, http.MethodGet, "/api/cart", id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("after discard: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.newSession(t)

	w := srv.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %s, want healthy", resp.Status)
	}
	if resp.ActiveSessions != 1 {
		t.Errorf("active sessions = %d, want 1", resp.ActiveSessions)
	}
}
