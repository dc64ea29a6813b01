// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"netrestrict/internal/auth"
	"netrestrict/internal/config"
	"netrestrict/internal/handlers/admin"
	"netrestrict/internal/handlers/sites"
	"netrestrict/internal/handlers/users"
	"netrestrict/internal/middleware"
	"netrestrict/internal/repo"
	"netrestrict/internal/restrict"
	"netrestrict/internal/session"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Repo   repo.Repo
	Gate   *restrict.Manager
	Config config.Config
}

// NewRouter builds the full middleware chain and all routes.
func NewRouter(d Deps) *chi.Mux {
	cfg := d.Config
	loginPath := cfg.Network.LoginPath
	if loginPath == "" {
		loginPath = "login"
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.RequestID(cfg.Security.RequestID.TrustHeader))
	mux.Use(middleware.OptionalAuth(d.Repo))
	mux.Use(middleware.EnrichLogger)
	mux.Use(middleware.SlogRequestLogger)
	if cfg.Security.RateLimit.Enabled {
		mux.Use(middleware.RateLimitWith(cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst, cfg.Security.RateLimit.TTL))
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	mux.Use(middleware.LoginScreen("/auth/login", "/sites/*/"+loginPath))
	mux.Use(restrict.Localize)

	RegisterRoutes(mux, d, loginPath)
	return mux
}

func RegisterRoutes(mux chi.Router, d Deps, loginPath string) {
	r := d.Repo
	u := users.New(r, d.Gate)
	// auth reads and writes session.DefaultStore; admin must see the same store.
	a := admin.New(r, d.Gate, session.DefaultStore)
	s := sites.New(r, loginPath)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// Local auth routes
	mux.Post("/auth/signup", auth.SignupHandler(r, d.Gate, d.Config.Network.SuperAdminEmails))
	mux.Post("/auth/login", auth.LoginHandler(r))
	mux.Post("/auth/logout", auth.LogoutHandler())
	mux.With(middleware.RequireAuth(r)).Get("/auth/me", auth.ProfileHandler(r, d.Gate))

	// Own profile
	mux.Route("/profile", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.Get("/", u.ShowProfile)
		sr.Post("/", u.SaveProfile)
	})

	// Network admin
	mux.Route("/network", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.Use(middleware.RequireSuperAdmin)
		sr.Get("/users/{id}", u.ShowUser)
		sr.Post("/users/{id}", u.SaveUser)
		sr.Get("/users/{id}/restricted", u.Restricted)
		sr.Get("/settings", a.ShowSettings)
		sr.Post("/settings", a.SaveSettings)
		sr.Get("/sessions", a.ListSessions)
		sr.Delete("/sessions/{userID}", a.RevokeSessions)
		sr.Post("/sites", a.CreateSite)
		sr.Post("/sites/{slug}/members", a.AddMember)
	})

	// Site content, gated at request start and again on the community screens
	mux.Route("/sites/{slug}", func(sr chi.Router) {
		sr.Use(middleware.SiteContext(r))
		sr.Use(restrict.Gate(d.Gate, restrict.StageRequestStart))
		sr.Get("/", s.Home)
		sr.Get("/admin/", s.Dashboard)
		sr.Get("/"+loginPath, s.LoginForm)
		sr.Post("/"+loginPath, auth.LoginHandler(r))
		sr.Route("/members", func(mr chi.Router) {
			mr.Use(restrict.Gate(d.Gate, restrict.StageScreens))
			mr.Get("/", s.Members)
			mr.Get("/{section}", s.Members)
		})
	})
}
