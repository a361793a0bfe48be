// Package app provides application-level wiring for the policy server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"bi-demo/internal/api"
	"bi-demo/internal/audit"
	"bi-demo/internal/config"
	"bi-demo/internal/middleware"
	"bi-demo/internal/policy"
)

// Deps holds the external dependencies that main() must provide: the loaded
// config, the logger, and the open audit database handle.
type Deps struct {
	Cfg     *config.Config
	AuditDB *sql.DB
	Logger  *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Engine  *policy.Engine
	Audit   *audit.Store
	Handler *api.Handler
}

// New wires the policy engine, audit store, and API handler from the
// provided deps.
func New(ctx context.Context, deps Deps) (*App, error) {
	store := audit.NewStore(deps.AuditDB)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init audit store: %w", err)
	}

	engine := policy.NewEngine(deps.Cfg, deps.Logger.With("component", "policy"))
	handler := api.NewHandler(engine, store, deps.Logger.With("component", "api"))

	return &App{Engine: engine, Audit: store, Handler: handler}, nil
}

// Router assembles the HTTP router: recovery, request IDs, rate limiting,
// the health probe, and the /v1 callback surface.
func (a *App) Router(cfg *config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/v1", a.Handler.Routes())
	return r
}
