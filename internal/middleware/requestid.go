package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mindsync/wellness/internal/ctxkeys"
)

const RequestIDHeader = "X-Request-ID"

// WithRequestID tags the request with the caller's X-Request-ID or a new one
// and echoes it on the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := ctxkeys.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
