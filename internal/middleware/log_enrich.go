package middleware

import (
	"context"
	"net/http"

	"netrestrict/internal/auth"
)

// private context keys for logging enrichment
type ctxKey string

const (
	ctxLogUserID ctxKey = "log_user_id"
	ctxLogSiteID ctxKey = "log_site_id"
	ctxLogProv   ctxKey = "log_provider"
)

// EnrichLogger stores user_id/provider into context for logging handlers to
// pick up. It must run after OptionalAuth; site_id is added by SiteContext.
func EnrichLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if u, ok := auth.GetUserFromContext(ctx); ok && u != nil {
			ctx = context.WithValue(ctx, ctxLogUserID, u.ID.String())
		}
		if sess, ok := auth.SessionFromContext(ctx); ok && sess != nil && sess.Provider != "" {
			ctx = context.WithValue(ctx, ctxLogProv, sess.Provider)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func withLogSiteID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxLogSiteID, id)
}

// GetLogUserID returns the enriched user id if set.
func GetLogUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogUserID).(string)
	return v, ok && v != ""
}

// GetLogSiteID returns the enriched site id if set.
func GetLogSiteID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogSiteID).(string)
	return v, ok && v != ""
}

// GetLogProvider returns the enriched provider if set.
func GetLogProvider(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogProv).(string)
	return v, ok && v != ""
}
