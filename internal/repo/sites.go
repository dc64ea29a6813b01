package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	db "netrestrict/internal/db/gen"
	"netrestrict/internal/models"
)

// ---------------- Sites & memberships ----------------

func (p *pgRepo) CreateSite(ctx context.Context, slug, name string) (models.Site, error) {
	slog.DebugContext(ctx, "CreateSite", "slug", slug)
	s, err := p.q.CreateSite(ctx, db.CreateSiteParams{Slug: slug, Name: name})
	if err != nil {
		if isUniqueViolation(err) {
			return models.Site{}, models.ErrSiteExists
		}
		slog.ErrorContext(ctx, "CreateSite failed", "err", err)
		return models.Site{}, err
	}
	return siteFromRow(s), nil
}

func (p *pgRepo) UpsertSite(ctx context.Context, slug, name string) (models.Site, error) {
	slog.DebugContext(ctx, "UpsertSite", "slug", slug)
	s, err := p.q.UpsertSite(ctx, db.UpsertSiteParams{Slug: slug, Name: name})
	if err != nil {
		slog.ErrorContext(ctx, "UpsertSite failed", "err", err)
		return models.Site{}, err
	}
	return siteFromRow(s), nil
}

func (p *pgRepo) FindSiteBySlug(ctx context.Context, slug string) (models.Site, error) {
	slog.DebugContext(ctx, "FindSiteBySlug", "slug", slug)
	s, err := p.q.FindSiteBySlug(ctx, slug)
	if err != nil {
		if isNoRows(err) {
			return models.Site{}, models.ErrSiteNotFound
		}
		slog.ErrorContext(ctx, "FindSiteBySlug failed", "err", err)
		return models.Site{}, err
	}
	return siteFromRow(s), nil
}

func (p *pgRepo) FindSiteByID(ctx context.Context, id uuid.UUID) (models.Site, error) {
	slog.DebugContext(ctx, "FindSiteByID", "site_id", id.String())
	s, err := p.q.FindSiteByID(ctx, fromUUID(id))
	if err != nil {
		if isNoRows(err) {
			return models.Site{}, models.ErrSiteNotFound
		}
		slog.ErrorContext(ctx, "FindSiteByID failed", "err", err)
		return models.Site{}, err
	}
	return siteFromRow(s), nil
}

func (p *pgRepo) EnsureMembership(ctx context.Context, siteID, userID uuid.UUID, defaultRole models.SiteRole) (models.SiteRole, error) {
	slog.DebugContext(ctx, "EnsureMembership", "site_id", siteID.String(), "user_id", userID.String(), "default_role", string(defaultRole))
	role, err := p.q.EnsureMembership(ctx, db.EnsureMembershipParams{
		SiteID: fromUUID(siteID),
		UserID: fromUUID(userID),
		Role:   string(defaultRole),
	})
	if err != nil {
		slog.ErrorContext(ctx, "EnsureMembership failed", "err", err)
		return "", fmt.Errorf("membership failed: %w", err)
	}
	return models.SiteRole(role), nil
}

func (p *pgRepo) IsMember(ctx context.Context, siteID, userID uuid.UUID) (bool, error) {
	slog.DebugContext(ctx, "IsMember", "site_id", siteID.String(), "user_id", userID.String())
	ok, err := p.q.IsSiteMember(ctx, db.IsSiteMemberParams{SiteID: fromUUID(siteID), UserID: fromUUID(userID)})
	if err != nil {
		slog.ErrorContext(ctx, "IsMember failed", "err", err)
		return false, err
	}
	return ok, nil
}

func (p *pgRepo) ListUserSites(ctx context.Context, uid uuid.UUID) ([]models.SiteSummary, error) {
	rows, err := p.q.ListUserSites(ctx, fromUUID(uid))
	if err != nil {
		slog.ErrorContext(ctx, "ListUserSites failed", "err", err)
		return nil, err
	}
	res := make([]models.SiteSummary, 0, len(rows))
	for _, r := range rows {
		res = append(res, models.SiteSummary{
			ID:   toUUID(r.ID),
			Slug: r.Slug,
			Name: r.Name,
			Role: models.SiteRole(r.Role),
		})
	}
	return res, nil
}
