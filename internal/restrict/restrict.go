// Package restrict keeps flagged users out of the sites of an open network
// they are not members of.
//
// A user is restricted when the user meta key network_restricted holds the
// number 1. The Manager reads that flag, together with the viewer identity
// and site memberships supplied by the host, on every site request and
// returns a Decision: Allow, or Deny with the HTML body of the denial page.
package restrict

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"netrestrict/internal/models"
)

const (
	// MetaKey is the user meta key holding the restriction flag.
	MetaKey = "network_restricted"
	// OptionDefault is the network option holding the default for new users.
	OptionDefault = "network_restricted_default"
	// DefaultRestrict is the only OptionDefault value that restricts new users.
	DefaultRestrict = "restrict"

	// FieldRestricted and FieldDefault are the form field names of the toggles.
	FieldRestricted = "network_restricted"
	FieldDefault    = "network_restricted_default"
)

// ErrForbidden is returned by the save operations when the viewer may not
// change the flag.
var ErrForbidden = errors.New("restrict: forbidden")

// Identity resolves the current viewer and super-admin status.
type Identity interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, bool)
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) bool
}

// Membership answers site membership questions.
type Membership interface {
	IsMember(ctx context.Context, siteID, userID uuid.UUID) (bool, error)
	ListUserSites(ctx context.Context, userID uuid.UUID) ([]models.SiteSummary, error)
}

// UserMeta is the per-user attribute store.
type UserMeta interface {
	GetUserMeta(ctx context.Context, userID uuid.UUID, key string) (string, bool, error)
	SetUserMeta(ctx context.Context, userID uuid.UUID, key, value string) error
}

// SiteURLs builds the dashboard and public URLs of a site.
type SiteURLs interface {
	AdminURL(site models.SiteSummary) string
	HomeURL(site models.SiteSummary) string
}

// Deps are the host collaborators of a Manager.
type Deps struct {
	Identity Identity
	Members  Membership
	Meta     UserMeta
	Settings *NetworkSettings
	URLs     SiteURLs
}

// Manager is the access gate and the settings manager of the network.
type Manager struct {
	identity Identity
	members  Membership
	meta     UserMeta
	settings *NetworkSettings
	urls     SiteURLs
}

var _ Lifecycle = (*Manager)(nil)

func NewManager(d Deps) *Manager {
	return &Manager{
		identity: d.Identity,
		members:  d.Members,
		meta:     d.Meta,
		settings: d.Settings,
		urls:     d.URLs,
	}
}

// Settings returns the network settings object the manager writes through.
func (m *Manager) Settings() *NetworkSettings { return m.settings }

// IsUserRestricted reports whether userID is restricted on the network.
// uuid.Nil means the current viewer; without a viewer the answer is false.
// Store failures are logged and answered with false.
func (m *Manager) IsUserRestricted(ctx context.Context, userID uuid.UUID) bool {
	if userID == uuid.Nil {
		id, ok := m.identity.CurrentUserID(ctx)
		if !ok || id == uuid.Nil {
			return false
		}
		userID = id
	}
	v, ok, err := m.meta.GetUserMeta(ctx, userID, MetaKey)
	if err != nil {
		slog.ErrorContext(ctx, "read restriction flag failed", "user_id", userID.String(), "err", err)
		return false
	}
	return ok && isRestrictedValue(v)
}

// decimalNumber is the plain decimal grammar; hex, inf and nan are not numbers here.
var decimalNumber = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// isRestrictedValue is true iff v is a decimal number equal to 1.
func isRestrictedValue(v string) bool {
	v = strings.TrimSpace(v)
	if !decimalNumber.MatchString(v) {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f == 1
}

// OnUserRegistered applies the network default to a freshly created user.
// Nothing is written unless the default is DefaultRestrict.
func (m *Manager) OnUserRegistered(ctx context.Context, userID uuid.UUID) error {
	restrictNew, err := m.settings.RestrictNewUsers(ctx)
	if err != nil {
		return err
	}
	if !restrictNew {
		return nil
	}
	slog.InfoContext(ctx, "restricting new user by network default", "user_id", userID.String())
	return m.meta.SetUserMeta(ctx, userID, MetaKey, "1")
}

// canEditRestriction: only super-admins, and never on another super-admin.
func (m *Manager) canEditRestriction(ctx context.Context, target uuid.UUID) bool {
	viewer, ok := m.identity.CurrentUserID(ctx)
	if !ok || !m.identity.IsSuperAdmin(ctx, viewer) {
		return false
	}
	return !m.identity.IsSuperAdmin(ctx, target)
}

func (m *Manager) viewerIsSuperAdmin(ctx context.Context) bool {
	viewer, ok := m.identity.CurrentUserID(ctx)
	return ok && m.identity.IsSuperAdmin(ctx, viewer)
}

// SaveUserProfileToggle stores the profile checkbox of target.
func (m *Manager) SaveUserProfileToggle(ctx context.Context, target uuid.UUID, checked bool) error {
	if !m.canEditRestriction(ctx, target) {
		return ErrForbidden
	}
	v := "0"
	if checked {
		v = "1"
	}
	slog.InfoContext(ctx, "restriction flag saved", "target_user_id", target.String(), "restricted", checked)
	return m.meta.SetUserMeta(ctx, target, MetaKey, v)
}

// SaveNetworkDefaultToggle stores the submitted value verbatim.
func (m *Manager) SaveNetworkDefaultToggle(ctx context.Context, value string) error {
	if !m.viewerIsSuperAdmin(ctx) {
		return ErrForbidden
	}
	return m.settings.Set(ctx, value)
}

// checkboxChecked treats an absent field as unchecked.
func checkboxChecked(values map[string][]string, name string) bool {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(vs[0]))
	switch v {
	case "on", "true", "yes":
		return true
	}
	n, err := strconv.ParseFloat(v, 64)
	return err == nil && n != 0
}
