package restrict

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"netrestrict/internal/models"
)

// Lifecycle is the set of host lifecycle points the gate takes part in.
// The host harness calls each method explicitly.
type Lifecycle interface {
	OnRequestStart(ctx context.Context, req Request) Decision
	OnUserCreated(ctx context.Context, userID uuid.UUID) error
	OnProfileRender(ctx context.Context, target models.User) templ.Component
	OnProfileSave(ctx context.Context, targetID uuid.UUID, form url.Values) error
	OnSettingsRender(ctx context.Context) templ.Component
	OnSettingsSave(ctx context.Context, form url.Values) error
}

func (m *Manager) OnRequestStart(ctx context.Context, req Request) Decision {
	return m.Authenticate(ctx, req)
}

func (m *Manager) OnUserCreated(ctx context.Context, userID uuid.UUID) error {
	return m.OnUserRegistered(ctx, userID)
}

func (m *Manager) OnProfileRender(ctx context.Context, target models.User) templ.Component {
	return m.RenderUserProfileToggle(ctx, target)
}

func (m *Manager) OnProfileSave(ctx context.Context, targetID uuid.UUID, form url.Values) error {
	return m.SaveUserProfileToggle(ctx, targetID, checkboxChecked(form, FieldRestricted))
}

func (m *Manager) OnSettingsRender(ctx context.Context) templ.Component {
	return m.RenderNetworkDefaultToggle(ctx)
}

func (m *Manager) OnSettingsSave(ctx context.Context, form url.Values) error {
	return m.SaveNetworkDefaultToggle(ctx, form.Get(FieldDefault))
}
