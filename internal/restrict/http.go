package restrict

import (
	"net/http"
	"net/url"
	"strings"

	"netrestrict/internal/httpctx"
	"netrestrict/internal/models"
	"netrestrict/internal/views"
)

// URLResolver builds site URLs under a single base URL.
type URLResolver struct {
	BaseURL string
}

func (u URLResolver) AdminURL(s models.SiteSummary) string {
	return u.HomeURL(s) + "admin/"
}

func (u URLResolver) HomeURL(s models.SiteSummary) string {
	return strings.TrimRight(u.BaseURL, "/") + "/sites/" + url.PathEscape(s.Slug) + "/"
}

// Gate runs the lifecycle's request hook at stage for site-scoped routes.
// A denial terminates the request with a 403 and the rendered page; next is
// never called.
func Gate(l Lifecycle, stage Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			site, ok := httpctx.Site(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			if !views.HasLanguage(ctx) {
				ctx = views.WithLanguage(ctx, views.MatchLanguage(r.Header.Get("Accept-Language")))
			}
			d := l.OnRequestStart(ctx, Request{
				Stage:       stage,
				Site:        site,
				LoginScreen: httpctx.IsLoginScreen(ctx),
			})
			if d.Denied() {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("Cache-Control", "no-store")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write(d.Body())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Localize selects the rendering language from Accept-Language.
func Localize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := views.WithLanguage(r.Context(), views.MatchLanguage(r.Header.Get("Accept-Language")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
