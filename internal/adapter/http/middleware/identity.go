package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserIDContextKey is the context key for the calling user's ID.
	UserIDContextKey ContextKey = "user_id"

	// UserIDHeader carries the caller identity. The gateway in front of
	// this service authenticates the user and forwards only the ID.
	UserIDHeader = "X-User-ID"
)

// Identity extracts the caller's user ID and rejects requests without
// one.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the caller's user ID, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}
