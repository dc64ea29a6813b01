package httpctx

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"netrestrict/internal/auth"
	"netrestrict/internal/models"
)

type ctxKey int

const (
	ctxSite ctxKey = iota
	ctxLoginScreen
)

// Session returns the session from context if available.
func Session(ctx context.Context) (*models.Session, bool) {
	return auth.SessionFromContext(ctx)
}

// User returns the user pointer from context if available.
func User(ctx context.Context) (*models.User, bool) {
	u, ok := auth.GetUserFromContext(ctx)
	return u, ok && u != nil
}

// UserID returns a user id from context from either user or session.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	if u, ok := User(ctx); ok {
		return u.ID, true
	}
	if s, ok := auth.SessionFromContext(ctx); ok && s != nil {
		return s.UserID, true
	}
	return uuid.Nil, false
}

// WithSite stores the site the request is addressed to.
func WithSite(ctx context.Context, s models.Site) context.Context {
	return context.WithValue(ctx, ctxSite, s)
}

// Site returns the requested site if the route is site-scoped.
func Site(ctx context.Context) (models.Site, bool) {
	s, ok := ctx.Value(ctxSite).(models.Site)
	return s, ok
}

// WithLoginScreen marks the request as resolving a login screen.
func WithLoginScreen(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxLoginScreen, true)
}

func IsLoginScreen(ctx context.Context) bool {
	v, _ := ctx.Value(ctxLoginScreen).(bool)
	return v
}

// SuperAdminLookup resolves the super-admin flag of an arbitrary user.
type SuperAdminLookup interface {
	IsSuperAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}

// Identity answers "who is viewing" from the request context.
type Identity struct {
	lookup SuperAdminLookup
}

func NewIdentity(l SuperAdminLookup) Identity { return Identity{lookup: l} }

func (i Identity) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	return UserID(ctx)
}

// IsSuperAdmin reports false when the flag cannot be resolved.
func (i Identity) IsSuperAdmin(ctx context.Context, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	if u, ok := User(ctx); ok && u.ID == id {
		return u.SuperAdmin
	}
	if i.lookup == nil {
		return false
	}
	super, err := i.lookup.IsSuperAdmin(ctx, id)
	if err != nil {
		slog.DebugContext(ctx, "super admin lookup failed", "user_id", id.String(), "err", err)
		return false
	}
	return super
}
