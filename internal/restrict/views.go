package restrict

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"netrestrict/internal/models"
	"netrestrict/internal/views"
)

type siteLink struct {
	Name     string
	AdminURL string
	HomeURL  string
}

// RenderUserProfileToggle is the "Restrict User Access" checkbox of target.
// It renders nothing unless the viewer may change the flag.
func (m *Manager) RenderUserProfileToggle(ctx context.Context, target models.User) templ.Component {
	if !m.canEditRestriction(ctx, target.ID) {
		return templ.NopComponent
	}
	checked := m.IsUserRestricted(ctx, target.ID)
	return toggleRow(FieldRestricted, "1", checked, msgRestrictUser, msgRestrictUserD)
}

// RenderNetworkDefaultToggle is the "Restrict New Users" checkbox.
func (m *Manager) RenderNetworkDefaultToggle(ctx context.Context) templ.Component {
	if !m.viewerIsSuperAdmin(ctx) {
		return templ.NopComponent
	}
	restrictNew, err := m.settings.RestrictNewUsers(ctx)
	if err != nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error { return err })
	}
	return toggleRow(FieldDefault, DefaultRestrict, restrictNew, msgRestrictNew, msgRestrictNewD)
}

func toggleRow(field, value string, checked bool, label, description string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := views.Printer(ctx)
		h := views.NewWriter(w)
		h.Raw(`<table class="form-table"><tbody><tr><th><label for="`)
		h.Text(field)
		h.Raw(`">`)
		h.Text(p.Sprintf(label))
		h.Raw(`</label></th><td><input type="checkbox" name="`)
		h.Text(field)
		h.Raw(`" id="`)
		h.Text(field)
		h.Raw(`" value="`)
		h.Text(value)
		h.Raw(`"`)
		if checked {
			h.Raw(` checked`)
		}
		h.Raw(`> <span class="description">`)
		h.Text(p.Sprintf(description))
		h.Raw(`</span></td></tr></tbody></table>`)
		return h.Err()
	})
}

// deniedPage is the terminal page shown to a restricted viewer.
func deniedPage(site models.Site, own []siteLink) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := views.Printer(ctx)
		h := views.NewWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="`)
		h.Text(views.LanguageFromContext(ctx).String())
		h.Raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(p.Sprintf(msgDeniedTitle))
		h.Raw(`</title></head><body id="error-page"><p>`)
		h.Text(p.Sprintf(msgDeniedIntro, site.Name))
		h.Raw(`</p><p>`)
		h.Text(p.Sprintf(msgDeniedHelp))
		h.Raw(`</p><h3>`)
		h.Text(p.Sprintf(msgYourSites))
		h.Raw(`</h3>`)
		if len(own) == 0 {
			h.Raw(`<p>`)
			h.Text(p.Sprintf(msgNoSites))
			h.Raw(`</p>`)
		} else {
			h.Raw(`<table>`)
			for _, s := range own {
				h.Raw(`<tr><td>`)
				h.Text(s.Name)
				h.Raw(`</td><td><a href="`)
				h.URL(s.AdminURL)
				h.Raw(`">`)
				h.Text(p.Sprintf(msgVisitDashboard))
				h.Raw(`</a> | <a href="`)
				h.URL(s.HomeURL)
				h.Raw(`">`)
				h.Text(p.Sprintf(msgViewSite))
				h.Raw(`</a></td></tr>`)
			}
			h.Raw(`</table>`)
		}
		h.Raw(`</body></html>`)
		return h.Err()
	})
}
