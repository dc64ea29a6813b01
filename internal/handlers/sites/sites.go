// Package sites serves the content of the individual network sites. Every
// route here runs behind SiteContext and the access gate.
package sites

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"netrestrict/internal/auth"
	"netrestrict/internal/httpctx"
	httpserver "netrestrict/internal/http"
	"netrestrict/internal/models"
	"netrestrict/internal/repo"
	"netrestrict/internal/views"
)

type Handler struct {
	repo      repo.Repo
	loginPath string
}

func New(r repo.Repo, loginPath string) *Handler {
	return &Handler{repo: r, loginPath: strings.Trim(loginPath, "/")}
}

func sitePath(s models.Site, rest string) string {
	return "/sites/" + url.PathEscape(s.Slug) + "/" + rest
}

func (h *Handler) site(w http.ResponseWriter, r *http.Request) (models.Site, bool) {
	s, ok := httpctx.Site(r.Context())
	if !ok {
		http.NotFound(w, r)
	}
	return s, ok
}

// Home handles GET /sites/{slug}/.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	s, ok := h.site(w, r)
	if !ok {
		return
	}
	httpserver.HTML(w, r, http.StatusOK, views.Page(s.Name, views.Stack(
		views.Paragraph("Welcome to "+s.Name+"."),
		views.LinkList([]views.Link{
			{Label: "Dashboard", URL: sitePath(s, "admin/")},
			{Label: "Community", URL: sitePath(s, "members/")},
		}),
	)))
}

// Dashboard handles GET /sites/{slug}/admin/. Anonymous viewers are sent to
// the site's login screen.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.site(w, r)
	if !ok {
		return
	}
	u, ok := auth.GetUserFromContext(r.Context())
	if !ok || u == nil {
		q := url.Values{"redirect_to": {r.URL.Path}}
		http.Redirect(w, r, sitePath(s, h.loginPath)+"?"+q.Encode(), http.StatusFound)
		return
	}
	role := "none"
	if u.SuperAdmin {
		role = "super admin"
	}
	sites, err := h.repo.ListUserSites(r.Context(), u.ID)
	if err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "internal error")
		http.Error(w, msg, status)
		return
	}
	for _, own := range sites {
		if own.ID == s.ID {
			role = string(own.Role)
			break
		}
	}
	httpserver.HTML(w, r, http.StatusOK, views.Page(s.Name+" Dashboard", views.Stack(
		views.Paragraph("Howdy, "+u.Name+"."),
		views.Paragraph("Your role on this site: "+role+"."),
	)))
}

// LoginForm handles GET /sites/{slug}/{loginPath}.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.site(w, r)
	if !ok {
		return
	}
	redirectTo := r.URL.Query().Get("redirect_to")
	if !strings.HasPrefix(redirectTo, "/") || strings.HasPrefix(redirectTo, "//") {
		redirectTo = sitePath(s, "admin/")
	}
	httpserver.HTML(w, r, http.StatusOK, views.Page("Log In to "+s.Name,
		views.LoginForm(sitePath(s, h.loginPath), redirectTo)))
}

// Members handles GET /sites/{slug}/members/ and /sites/{slug}/members/{section}.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	s, ok := h.site(w, r)
	if !ok {
		return
	}
	section := chi.URLParam(r, "section")
	if section == "" {
		section = "activity"
	}
	httpserver.HTML(w, r, http.StatusOK, views.Page(s.Name+" Community", views.Stack(
		views.Paragraph("Section: "+section),
		views.LinkList([]views.Link{
			{Label: "Activity", URL: sitePath(s, "members/activity")},
			{Label: "Groups", URL: sitePath(s, "members/groups")},
		}),
	)))
}
