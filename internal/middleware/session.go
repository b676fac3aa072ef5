package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Lixing-Zhang/foodie-express/internal/session"
)

// SessionHeader carries the session ID on every session-scoped request
const SessionHeader = "X-Session-ID"

type contextKey struct{}

// sessionResolver is the part of session.Manager the middleware needs
type sessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// RequireSession middleware resolves the session named by the X-Session-ID
// header and stores it in the request context
func RequireSession(sessions sessionResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)

			if id == "" {
				writeError(w, http.StatusUnauthorized, "Session required")
				return
			}

			sess, err := sessions.Get(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusNotFound, "Session not found")
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session stored by RequireSession
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*session.Session)
	return sess, ok
}

// WithSession returns a copy of ctx carrying sess
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
