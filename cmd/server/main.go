// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"netrestrict/internal/auth"
	"netrestrict/internal/config"
	db "netrestrict/internal/db/gen"
	"netrestrict/internal/db/schema"
	"netrestrict/internal/handlers"
	"netrestrict/internal/httpctx"
	"netrestrict/internal/logging"
	"netrestrict/internal/repo"
	"netrestrict/internal/restrict"
	"netrestrict/internal/session"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// --- Logger ---
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format == "json")

	// Session cookie policy (dev often needs Secure=false)
	auth.SetCookieSecurity(cfg.Security.Session.CookieSecure)
	auth.SetCookieSameSite(cfg.Security.Session.SameSite)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Background session sweeper ---
	session.DefaultStore.StartSweeper(ctx, cfg.Security.Session.SweeperInterval)

	// --- Store ---
	r, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store open error", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	for _, seed := range cfg.Network.Sites {
		site, err := r.UpsertSite(ctx, seed.Slug, seed.Name)
		if err != nil {
			slog.Error("seed site failed", "slug", seed.Slug, "err", err)
			os.Exit(1)
		}
		slog.Debug("site ready", "slug", site.Slug, "site_id", site.ID.String())
	}

	// --- Access gate ---
	gate := restrict.NewManager(restrict.Deps{
		Identity: httpctx.NewIdentity(r),
		Members:  r,
		Meta:     r,
		Settings: restrict.NewNetworkSettings(r),
		URLs:     restrict.URLResolver{BaseURL: cfg.BaseURL},
	})

	mux := handlers.NewRouter(handlers.Deps{
		Repo:   r,
		Gate:   gate,
		Config: cfg,
	})

	// --- Start server ---
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}()

	slog.Info("listening", "addr", cfg.ListenAddr, "base_url", cfg.BaseURL, "network", cfg.Network.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

// openStore connects the configured database and applies the schema.
func openStore(ctx context.Context, cfg config.Config) (repo.Repo, func(), error) {
	if cfg.Database.Driver == "sqlite" {
		s, err := repo.NewSQLite(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}

	slog.Debug("connecting to database")
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	q := db.New(pool)
	if err := q.ApplySchema(ctx, schema.Postgres); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("apply schema: %w", err)
	}
	slog.Debug("database connection ready")
	return repo.New(q), pool.Close, nil
}
