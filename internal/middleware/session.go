package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/profilehub/profilehub-go/internal/session"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionResolver maps a request's session cookie to a user id.
type SessionResolver interface {
	TokenFromRequest(r *http.Request) string
	Resolve(ctx context.Context, token string) (string, error)
}

// RequireSession returns middleware that rejects requests without a valid session
// and stores the session's user id in the request context.
func RequireSession(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.Resolve(r.Context(), sessions.TokenFromRequest(r))
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					writeJSONError(w, http.StatusUnauthorized, "not logged in")
					return
				}
				slog.ErrorContext(r.Context(), "session lookup failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
