package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	httpserver "netrestrict/internal/http"
	"netrestrict/internal/repo"
)

// RestrictionChecker reports the restriction flag of a user.
type RestrictionChecker interface {
	IsUserRestricted(ctx context.Context, userID uuid.UUID) bool
}

// ProfileHandler returns the caller's own account.
// GET /auth/me
func ProfileHandler(r repo.Repo, rc RestrictionChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		u, ok := GetUserFromContext(req.Context())
		if !ok || u == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		sites, err := r.ListUserSites(req.Context(), u.ID)
		if err != nil {
			httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		provider := ""
		if s, ok := SessionFromContext(req.Context()); ok && s != nil {
			provider = s.Provider
		}
		httpserver.JSON(w, http.StatusOK, map[string]any{
			"id":          u.ID.String(),
			"email":       u.Email,
			"name":        u.Name,
			"super_admin": u.SuperAdmin,
			"restricted":  rc.IsUserRestricted(req.Context(), u.ID),
			"provider":    provider,
			"sites":       sites,
		})
	}
}
