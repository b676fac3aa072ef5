package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/foodie-express/internal/auth"
	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
)

// AuthHandler signs the session's user in and out
type AuthHandler struct {
	auth *auth.Authenticator
	log  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *auth.Authenticator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: authenticator,
		log:  log,
	}
}

// SignInRequest is the body of POST /api/auth/signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	var req SignInRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	user, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	sess.SetUser(user)
	h.log.Info("user signed in", "session_id", sess.ID, "user_id", user.ID)
	WriteJSON(w, http.StatusOK, user, h.log)
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	var req auth.SignUpRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	user, err := h.auth.SignUp(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	sess.SetUser(user)
	h.log.Info("user signed up", "session_id", sess.ID, "user_id", user.ID)
	WriteJSON(w, http.StatusCreated, user, h.log)
}

// SignOut handles POST /api/auth/signout. The cart is kept.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	sess.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Missing session", h.log)
		return
	}

	user := sess.User()
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Not signed in", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, user, h.log)
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		WriteError(w, http.StatusBadRequest, "Email and password are required", h.log)
		return
	}
	h.log.Error("authentication failed", "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
}
