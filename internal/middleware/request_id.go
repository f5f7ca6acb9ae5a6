package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var requestIDHeaders = []string{"X-Request-Id", "X-Correlation-Id"}

// RequestID echoes an incoming request id or mints a fresh one, so log lines
// from one request can be stitched together across middleware.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := readRequestID(r)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			r.Header.Set("X-Request-Id", requestID)
			w.Header().Set("X-Request-Id", requestID)
			next.ServeHTTP(w, r)
		})
	}
}

func readRequestID(r *http.Request) string {
	for _, key := range requestIDHeaders {
		if value := strings.TrimSpace(r.Header.Get(key)); value != "" {
			return value
		}
	}
	return ""
}
