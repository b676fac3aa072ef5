package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
)

// SessionHandler opens and closes shopper sessions
type SessionHandler struct {
	sessions *session.Manager
	log      *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, log *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		log:      log,
	}
}

// SessionResponse carries the id clients send back in the session header
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create(r.Context())
	w.Header().Set(middleware.SessionHeader, sess.ID)
	WriteJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.ID}, h.log)
}

// End handles DELETE /api/sessions. The cart stays resumable unless
// ?discard=true is given.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	if r.URL.Query().Get("discard") != "true" {
		h.sessions.End(sess.ID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.sessions.Discard(r.Context(), sess.ID); err != nil {
		h.log.Error("failed to discard session", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
