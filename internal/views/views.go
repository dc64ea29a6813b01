// Package views holds the HTML pages of the network host.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page wraps body in the network document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="`)
		h.Text(LanguageFromContext(ctx).String())
		h.Raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(title)
		h.Raw(`</title></head><body><main><h1>`)
		h.Text(title)
		h.Raw(`</h1>`)
		h.Render(ctx, body)
		h.Raw(`</main></body></html>`)
		return h.Err()
	})
}

// SettingsForm posts fields to action. saved shows the update notice.
func SettingsForm(action string, fields templ.Component, saved bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := Printer(ctx)
		h := NewWriter(w)
		if saved {
			h.Raw(`<div class="notice updated"><p>`)
			h.Text(p.Sprintf(msgSettingsSaved))
			h.Raw(`</p></div>`)
		}
		h.Raw(`<form method="post" action="`)
		h.URL(action)
		h.Raw(`">`)
		h.Render(ctx, fields)
		h.Raw(`<p class="submit"><button type="submit">`)
		h.Text(p.Sprintf(msgSaveChanges))
		h.Raw(`</button></p></form>`)
		return h.Err()
	})
}

// Account is the read-only header of a profile page.
func Account(name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := Printer(ctx)
		h := NewWriter(w)
		h.Raw(`<dl class="account"><dt>`)
		h.Text(p.Sprintf(msgName))
		h.Raw(`</dt><dd>`)
		h.Text(name)
		h.Raw(`</dd><dt>`)
		h.Text(p.Sprintf(msgEmail))
		h.Raw(`</dt><dd>`)
		h.Text(email)
		h.Raw(`</dd></dl>`)
		return h.Err()
	})
}

// Stack renders components one after the other.
func Stack(cs ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		for _, c := range cs {
			h.Render(ctx, c)
		}
		return h.Err()
	})
}

// Paragraph is a single escaped paragraph.
func Paragraph(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<p>`)
		h.Text(s)
		h.Raw(`</p>`)
		return h.Err()
	})
}

// LoginForm is the login screen of a site.
func LoginForm(action, redirectTo string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := Printer(ctx)
		h := NewWriter(w)
		h.Raw(`<form method="post" action="`)
		h.URL(action)
		h.Raw(`"><p><label for="username">`)
		h.Text(p.Sprintf(msgUsername))
		h.Raw(`</label><input type="text" name="username" id="username" autocomplete="username"></p><p><label for="password">`)
		h.Text(p.Sprintf(msgPassword))
		h.Raw(`</label><input type="password" name="password" id="password" autocomplete="current-password"></p>`)
		h.Raw(`<input type="hidden" name="redirect_to" value="`)
		h.Text(redirectTo)
		h.Raw(`"><p class="submit"><button type="submit">`)
		h.Text(p.Sprintf(msgLogIn))
		h.Raw(`</button></p></form>`)
		return h.Err()
	})
}

// Link is one entry of a LinkList.
type Link struct {
	Label string
	URL   string
}

// LinkList renders links as an unordered list.
func LinkList(links []Link) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<ul>`)
		for _, l := range links {
			h.Raw(`<li><a href="`)
			h.URL(l.URL)
			h.Raw(`">`)
			h.Text(l.Label)
			h.Raw(`</a></li>`)
		}
		h.Raw(`</ul>`)
		return h.Err()
	})
}
