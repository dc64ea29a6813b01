// internal/repo/repo.go
package repo

import (
	"context"

	"github.com/google/uuid"

	db "netrestrict/internal/db/gen"
	"netrestrict/internal/models"
)

// Repo defines the methods the rest of the app uses.
type Repo interface {
	// Users
	CreateUser(ctx context.Context, email, name string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	IsSuperAdmin(ctx context.Context, id uuid.UUID) (bool, error)
	SetSuperAdmin(ctx context.Context, id uuid.UUID, super bool) error
	// DeleteUser removes the user with its credential, meta and memberships.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Local auth
	CreateLocalCredential(ctx context.Context, uid uuid.UUID, username, phc string) error
	GetLocalCredentialByUsername(ctx context.Context, username string) (models.LocalCredential, models.User, error)

	// Per-user attributes. ok is false when the key was never written.
	GetUserMeta(ctx context.Context, uid uuid.UUID, key string) (value string, ok bool, err error)
	SetUserMeta(ctx context.Context, uid uuid.UUID, key, value string) error

	// Network-wide options
	GetNetworkOption(ctx context.Context, key string) (value string, ok bool, err error)
	SetNetworkOption(ctx context.Context, key, value string) error

	// Sites & memberships
	// CreateSite fails with models.ErrSiteExists when slug is taken.
	CreateSite(ctx context.Context, slug, name string) (models.Site, error)
	// UpsertSite creates the site or renames the one holding slug.
	UpsertSite(ctx context.Context, slug, name string) (models.Site, error)
	FindSiteBySlug(ctx context.Context, slug string) (models.Site, error)
	FindSiteByID(ctx context.Context, id uuid.UUID) (models.Site, error)
	EnsureMembership(ctx context.Context, siteID, userID uuid.UUID, defaultRole models.SiteRole) (models.SiteRole, error)
	IsMember(ctx context.Context, siteID, userID uuid.UUID) (bool, error)
	ListUserSites(ctx context.Context, uid uuid.UUID) ([]models.SiteSummary, error)
}

// pgRepo wraps the sqlc Queries.
type pgRepo struct{ q *db.Queries }

func New(q *db.Queries) Repo { return &pgRepo{q: q} }
