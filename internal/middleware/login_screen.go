package middleware

import (
	"net/http"
	"path"

	"netrestrict/internal/httpctx"
)

// LoginScreen flags requests whose path matches one of patterns (path.Match
// syntax, e.g. "/sites/*/login") as resolving a login screen. It must run
// before any site gate.
func LoginScreen(patterns ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := path.Clean("/" + r.URL.Path)
			for _, pat := range patterns {
				if ok, err := path.Match(pat, p); err == nil && ok {
					r = r.WithContext(httpctx.WithLoginScreen(r.Context()))
					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
