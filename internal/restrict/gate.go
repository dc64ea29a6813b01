package restrict

import (
	"bytes"
	"context"
	"log/slog"

	"netrestrict/internal/models"
)

// Stage is the lifecycle point the gate runs at.
type Stage int

const (
	// StageRequestStart runs first on every site request.
	StageRequestStart Stage = 0
	// StageScreens runs again when the community screen router takes over.
	StageScreens Stage = 5
)

func (s Stage) String() string {
	switch s {
	case StageRequestStart:
		return "request_start"
	case StageScreens:
		return "screens"
	default:
		return "unknown"
	}
}

// Request is what the gate knows about an incoming site request.
type Request struct {
	Stage       Stage
	Site        models.Site
	LoginScreen bool
}

// Decision is the outcome of the gate. The zero value allows.
type Decision struct {
	denied bool
	body   []byte
}

func Allow() Decision { return Decision{} }

func Deny(body []byte) Decision { return Decision{denied: true, body: body} }

func (d Decision) Denied() bool { return d.denied }

// Body is the terminal HTML page of a denial.
func (d Decision) Body() []byte { return d.body }

// Authenticate decides whether the current viewer may see req.Site.
// The login screen and super-admins are never gated.
func (m *Manager) Authenticate(ctx context.Context, req Request) Decision {
	if req.LoginScreen {
		return Allow()
	}
	viewer, ok := m.identity.CurrentUserID(ctx)
	if !ok {
		return Allow()
	}
	if m.identity.IsSuperAdmin(ctx, viewer) {
		return Allow()
	}
	if !m.IsUserRestricted(ctx, viewer) {
		return Allow()
	}
	member, err := m.members.IsMember(ctx, req.Site.ID, viewer)
	if err != nil {
		slog.ErrorContext(ctx, "membership check failed", "user_id", viewer.String(), "site_id", req.Site.ID.String(), "err", err)
	}
	if member {
		return Allow()
	}
	return m.AccessDenied(ctx, req)
}

// AccessDenied renders the denial page for the current viewer. It allows
// instead when the viewer is anonymous, a super-admin, or in fact a member
// of req.Site.
func (m *Manager) AccessDenied(ctx context.Context, req Request) Decision {
	viewer, ok := m.identity.CurrentUserID(ctx)
	if !ok || m.identity.IsSuperAdmin(ctx, viewer) {
		return Allow()
	}

	sites, err := m.members.ListUserSites(ctx, viewer)
	if err != nil {
		slog.ErrorContext(ctx, "list user sites failed", "user_id", viewer.String(), "err", err)
		sites = nil
	}
	for _, s := range sites {
		if s.ID == req.Site.ID {
			return Allow()
		}
	}

	links := make([]siteLink, 0, len(sites))
	for _, s := range sites {
		links = append(links, siteLink{
			Name:     s.Name,
			AdminURL: m.urls.AdminURL(s),
			HomeURL:  m.urls.HomeURL(s),
		})
	}

	var buf bytes.Buffer
	if err := deniedPage(req.Site, links).Render(ctx, &buf); err != nil {
		slog.ErrorContext(ctx, "render denial page failed", "err", err)
		buf.Reset()
		buf.WriteString("Forbidden")
	}
	slog.InfoContext(ctx, "access denied",
		"user_id", viewer.String(),
		"site_id", req.Site.ID.String(),
		"stage", req.Stage.String(),
		"own_sites", len(sites),
	)
	return Deny(buf.Bytes())
}
