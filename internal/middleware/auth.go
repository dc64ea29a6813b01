package middleware

import (
	"net/http"

	"netrestrict/internal/auth"
	"netrestrict/internal/repo"
)

// RequireAuth authenticates using the "session" cookie (auth.ReadSession),
// then loads the user by Session.UserID from the repo and injects both
// session and user into the context. A user already placed in the context
// by OptionalAuth is reused.
func RequireAuth(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if u, ok := auth.GetUserFromContext(req.Context()); ok && u != nil {
				next.ServeHTTP(w, req)
				return
			}
			s := auth.ReadSession(req)
			if s == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			user, err := r.GetUserByID(req.Context(), s.UserID)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := auth.WithSession(req.Context(), s)
			ctx = auth.WithUser(ctx, &user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
