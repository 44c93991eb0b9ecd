package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/iho/betwallet/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header clients retry with.
	IdempotencyKeyHeader = "Idempotency-Key"

	// inFlightMarker is the placeholder the store holds while the first
	// attempt is still executing.
	inFlightMarker = "processing"

	idempotencyTTL = 24 * time.Hour
)

// IdempotencyMiddleware makes mutating requests safely retryable: the
// first attempt under a key executes and its response is cached; a
// retry replays that response instead of moving the balance again.
// Keys are scoped per user so clients cannot collide with each other.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap wraps an http.Handler with idempotency handling. Requests
// without a key, and non-mutating methods, pass straight through.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		if userID, ok := UserIDFromContext(r.Context()); ok {
			key = userID + ":" + key
		}

		seen, cached, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if seen {
			if string(cached) == inFlightMarker {
				http.Error(w, "request already in progress", http.StatusConflict)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			_, _ = w.Write(cached)
			return
		}

		rec := &capturedResponse{ResponseWriter: w, status: http.StatusOK, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		// Only successful responses are worth replaying; a failure
		// releases the key so the client can retry for real.
		if rec.status >= 200 && rec.status < 300 {
			_ = m.store.Update(r.Context(), key, rec.body.Bytes(), idempotencyTTL)
		} else {
			_ = m.store.Delete(r.Context(), key)
		}
	})
}

type capturedResponse struct {
	http.ResponseWriter

	status int
	body   *bytes.Buffer
}

func (r *capturedResponse) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *capturedResponse) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
