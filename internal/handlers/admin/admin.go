package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpserver "netrestrict/internal/http"
	"netrestrict/internal/models"
	"netrestrict/internal/repo"
	"netrestrict/internal/restrict"
	"netrestrict/internal/session"
	"netrestrict/internal/views"
)

// Handler serves the network admin screens. Routes are mounted behind
// RequireAuth and RequireSuperAdmin.
type Handler struct {
	repo     repo.Repo
	gate     restrict.Lifecycle
	sessions *session.Store
}

func New(r repo.Repo, gate restrict.Lifecycle, sessions *session.Store) *Handler {
	return &Handler{repo: r, gate: gate, sessions: sessions}
}

// ShowSettings handles GET /network/settings.
func (h *Handler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	saved := r.URL.Query().Get("updated") == "1"
	page := views.Page("Network Settings", views.SettingsForm("/network/settings", h.gate.OnSettingsRender(r.Context()), saved))
	httpserver.HTML(w, r, http.StatusOK, page)
}

// SaveSettings handles POST /network/settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := h.gate.OnSettingsSave(r.Context(), r.PostForm); err != nil {
		if errors.Is(err, restrict.ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		slog.ErrorContext(r.Context(), "save network settings failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/network/settings?updated=1", http.StatusSeeOther)
}

// ListSessions returns JSON of active sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		Provider  string    `json:"provider"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	entries := h.sessions.List()
	out := make([]item, 0, len(entries))
	for _, e := range entries {
		out = append(out, item{
			// truncated: full ids are session credentials
			ID:        e.ID[:min(8, len(e.ID))],
			UserID:    e.Session.UserID.String(),
			Provider:  e.Session.Provider,
			ExpiresAt: e.Session.Expiry,
		})
	}
	httpserver.JSON(w, http.StatusOK, out)
}

// RevokeSessions handles DELETE /network/sessions/{userID}.
func (h *Handler) RevokeSessions(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	n := h.sessions.DeleteUser(uid)
	slog.InfoContext(r.Context(), "sessions revoked", "target_user_id", uid.String(), "count", n)
	httpserver.JSON(w, http.StatusOK, map[string]any{"revoked": n})
}

// CreateSite handles POST /network/sites
// Body: { "slug": "blog", "name": "Blog" }
func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	slug := strings.ToLower(strings.TrimSpace(body.Slug))
	if !validSlug(slug) {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid slug"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = slug
	}
	site, err := h.repo.CreateSite(r.Context(), slug, name)
	if err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "site create failed")
		httpserver.JSON(w, status, map[string]string{"error": msg})
		return
	}
	httpserver.JSON(w, http.StatusCreated, site)
}

// AddMember handles POST /network/sites/{slug}/members
// Body: { "user_id": "...", "role": "editor" }
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string          `json:"user_id"`
		Role   models.SiteRole `json:"role"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	uid, err := uuid.Parse(body.UserID)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	switch body.Role {
	case "":
		body.Role = models.RoleSubscriber
	case models.RoleAdministrator, models.RoleEditor, models.RoleSubscriber:
	default:
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid role"})
		return
	}
	ctx := r.Context()
	site, err := h.repo.FindSiteBySlug(ctx, strings.ToLower(chi.URLParam(r, "slug")))
	if err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "site lookup failed")
		httpserver.JSON(w, status, map[string]string{"error": msg})
		return
	}
	if _, err := h.repo.GetUserByID(ctx, uid); err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "user lookup failed")
		httpserver.JSON(w, status, map[string]string{"error": msg})
		return
	}
	role, err := h.repo.EnsureMembership(ctx, site.ID, uid, body.Role)
	if err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "membership failed")
		httpserver.JSON(w, status, map[string]string{"error": msg})
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"site_id": site.ID.String(), "user_id": uid.String(), "role": role})
}

func validSlug(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
