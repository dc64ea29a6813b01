package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"netrestrict/internal/httpctx"
	"netrestrict/internal/models"
	"netrestrict/internal/repo"
)

// SiteContext resolves the {slug} URL param to a site and stores it in the
// request context. Unknown sites are a 404.
func SiteContext(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			slug := strings.ToLower(chi.URLParam(req, "slug"))
			if slug == "" {
				http.NotFound(w, req)
				return
			}
			site, err := r.FindSiteBySlug(req.Context(), slug)
			if err != nil {
				if !errors.Is(err, models.ErrSiteNotFound) {
					slog.ErrorContext(req.Context(), "site lookup failed", "slug", slug, "err", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				http.NotFound(w, req)
				return
			}
			ctx := httpctx.WithSite(req.Context(), site)
			ctx = withLogSiteID(ctx, site.ID.String())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
