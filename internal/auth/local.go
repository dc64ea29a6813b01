// internal/auth/local.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	httpserver "netrestrict/internal/http"
	"netrestrict/internal/models"
	"netrestrict/internal/repo"
)

// UserCreatedHook runs right after a user record has been created.
type UserCreatedHook interface {
	OnUserCreated(ctx context.Context, userID uuid.UUID) error
}

const minPasswordLen = 8

// POST /auth/signup
// Body: { "email": "...", "name": "...", "password": "...", "site_slug": "blog" }
// site_slug is optional; when given the new user joins that site as subscriber.
func SignupHandler(r repo.Repo, hook UserCreatedHook, superAdminEmails []string) http.HandlerFunc {
	supers := make([]string, 0, len(superAdminEmails))
	for _, e := range superAdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			supers = append(supers, e)
		}
	}
	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
			SiteSlug string `json:"site_slug"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<16)).Decode(&body); err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(body.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid email"})
			return
		}
		if len(body.Password) < minPasswordLen {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "weak password"})
			return
		}

		ctx := req.Context()
		var site *models.Site
		if slug := strings.ToLower(strings.TrimSpace(body.SiteSlug)); slug != "" {
			s, err := r.FindSiteBySlug(ctx, slug)
			if err != nil {
				httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown site"})
				return
			}
			site = &s
		}

		phc, err := HashPassword(body.Password, DefaultArgonParams())
		if err != nil {
			httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": "hash error"})
			return
		}
		u, err := r.CreateUser(ctx, email, strings.TrimSpace(body.Name))
		if err != nil {
			status, msg := httpserver.StoreErrorMessage(err, "user create failed")
			httpserver.JSON(w, status, map[string]string{"error": msg})
			return
		}
		// Any failure below removes the user again: an account must not
		// be able to log in before its restriction default is recorded.
		fail := func(status int, msg string) {
			if err := r.DeleteUser(context.WithoutCancel(ctx), u.ID); err != nil {
				slog.ErrorContext(ctx, "signup rollback failed", "user_id", u.ID.String(), "err", err)
			}
			httpserver.JSON(w, status, map[string]string{"error": msg})
		}
		if err := r.CreateLocalCredential(ctx, u.ID, email, phc); err != nil {
			fail(httpserver.StoreErrorMessage(err, "credential create failed"))
			return
		}
		if slices.Contains(supers, email) {
			if err := r.SetSuperAdmin(ctx, u.ID, true); err != nil {
				fail(http.StatusInternalServerError, "super admin grant failed")
				return
			}
			u.SuperAdmin = true
			slog.InfoContext(ctx, "super admin registered", "user_id", u.ID.String())
		}
		if hook != nil {
			if err := hook.OnUserCreated(ctx, u.ID); err != nil {
				slog.ErrorContext(ctx, "user created hook failed", "user_id", u.ID.String(), "err", err)
				fail(http.StatusInternalServerError, "registration incomplete")
				return
			}
		}
		if site != nil {
			if _, err := r.EnsureMembership(ctx, site.ID, u.ID, models.RoleSubscriber); err != nil {
				fail(http.StatusInternalServerError, "membership failed")
				return
			}
		}

		SetSessionCookie(w, models.Session{
			UserID:   u.ID,
			Provider: "local",
			Expiry:   time.Now().Add(SessionTTL),
		})
		httpserver.JSON(w, http.StatusCreated, map[string]any{"ok": true, "user_id": u.ID.String()})
	}
}

type credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RedirectTo string `json:"redirect_to"`
}

// readCredentials accepts a JSON body or an HTML form post.
func readCredentials(w http.ResponseWriter, req *http.Request) (credentials, bool) {
	var c credentials
	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<16)).Decode(&c); err != nil {
			return c, false
		}
		return c, true
	}
	if err := req.ParseForm(); err != nil {
		return c, false
	}
	c.Username = req.PostForm.Get("username")
	c.Password = req.PostForm.Get("password")
	c.RedirectTo = req.PostForm.Get("redirect_to")
	return c, true
}

// POST /auth/login and POST /sites/{slug}/login
// Body: { "username": "...", "password": "..." } or the same as a form.
func LoginHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, ok := readCredentials(w, req)
		if !ok {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		username := strings.ToLower(strings.TrimSpace(body.Username))
		if username == "" || body.Password == "" {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}

		cred, user, err := r.GetLocalCredentialByUsername(req.Context(), username)
		if err != nil {
			if !errors.Is(err, models.ErrCredentialNotFound) {
				slog.ErrorContext(req.Context(), "login credential lookup failed", "err", err)
			}
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}
		if !VerifyPassword(body.Password, cred.PasswordHash) {
			ip, _ := ClientIP(req)
			slog.InfoContext(req.Context(), "login bad password", "username", username, "ip", ip.String())
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}

		SetSessionCookie(w, models.Session{
			UserID:   user.ID,
			Provider: "local",
			Expiry:   time.Now().Add(SessionTTL),
		})
		slog.InfoContext(req.Context(), "login", "user_id", user.ID.String())

		// Only same-origin relative redirects.
		if to := body.RedirectTo; strings.HasPrefix(to, "/") && !strings.HasPrefix(to, "//") {
			http.Redirect(w, req, to, http.StatusSeeOther)
			return
		}
		httpserver.JSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// POST /auth/logout
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ClearSessionCookie(w, req)
		w.WriteHeader(http.StatusNoContent)
	}
}
