// internal/handlers/users/users.go
package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"netrestrict/internal/auth"
	httpserver "netrestrict/internal/http"
	"netrestrict/internal/models"
	"netrestrict/internal/repo"
	"netrestrict/internal/restrict"
	"netrestrict/internal/views"
)

// Gate is the part of the access gate the profile screens drive.
type Gate interface {
	restrict.Lifecycle
	IsUserRestricted(ctx context.Context, userID uuid.UUID) bool
}

type Handler struct {
	repo repo.Repo
	gate Gate
}

func New(repo repo.Repo, gate Gate) *Handler {
	return &Handler{repo: repo, gate: gate}
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, title, action string, u models.User) {
	page := views.Page(title, views.Stack(
		views.Account(u.Name, u.Email),
		views.SettingsForm(action, h.gate.OnProfileRender(r.Context(), u), r.URL.Query().Get("updated") == "1"),
	))
	httpserver.HTML(w, r, http.StatusOK, page)
}

// ShowProfile handles GET /profile.
func (h *Handler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.GetUserFromContext(r.Context())
	if !ok || u == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	h.renderProfile(w, r, "Profile", "/profile", *u)
}

// SaveProfile handles POST /profile. Viewers who may not change their own
// flag get the usual redirect; the flag is left untouched.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.GetUserFromContext(r.Context())
	if !ok || u == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := h.gate.OnProfileSave(r.Context(), u.ID, r.PostForm); err != nil && !errors.Is(err, restrict.ErrForbidden) {
		slog.ErrorContext(r.Context(), "save profile failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/profile?updated=1", http.StatusSeeOther)
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return models.User{}, false
	}
	u, err := h.repo.GetUserByID(r.Context(), id)
	if err != nil {
		status, msg := httpserver.StoreErrorMessage(err, "user lookup failed")
		httpserver.JSON(w, status, map[string]string{"error": msg})
		return models.User{}, false
	}
	return u, true
}

// ShowUser handles GET /network/users/{id}.
func (h *Handler) ShowUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.target(w, r)
	if !ok {
		return
	}
	h.renderProfile(w, r, "Edit User", "/network/users/"+u.ID.String(), u)
}

// SaveUser handles POST /network/users/{id}.
func (h *Handler) SaveUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := h.gate.OnProfileSave(r.Context(), u.ID, r.PostForm); err != nil {
		if errors.Is(err, restrict.ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		slog.ErrorContext(r.Context(), "save user failed", "target_user_id", u.ID.String(), "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/network/users/"+u.ID.String()+"?updated=1", http.StatusSeeOther)
}

// Restricted handles GET /network/users/{id}/restricted.
func (h *Handler) Restricted(w http.ResponseWriter, r *http.Request) {
	u, ok := h.target(w, r)
	if !ok {
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"user_id":    u.ID.String(),
		"restricted": h.gate.IsUserRestricted(r.Context(), u.ID),
	})
}
