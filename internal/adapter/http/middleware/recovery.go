package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// Recovery turns handler panics into 500 responses. The stack is logged
// once here so handlers never need their own recover.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("recovered from handler panic")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
