package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ctxKeyRequestID is the context key type for request IDs.
type ctxKeyRequestID struct{}

const maxRequestIDLen = 128

// GetRequestID returns the request id from context if set.
func GetRequestID(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxKeyRequestID{}).(string)
	return s, ok && s != ""
}

// validRequestID accepts printable ASCII without spaces or quotes.
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c > '~' || c == '"' {
			return false
		}
	}
	return true
}

// RequestID ensures each request has a request ID.
// If trustHeader is true, a well-formed X-Request-ID is reused; otherwise a
// new one is always generated.
func RequestID(trustHeader bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := ""
			if trustHeader {
				if h := r.Header.Get("X-Request-ID"); validRequestID(h) {
					rid = h
				}
			}
			if rid == "" {
				rid = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
			w.Header().Set("X-Request-ID", rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
