package app

import (
	"context"
	"net/http"
	"time"

	"github.com/finanzapp/finanzapp/internal/config"
	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *database.DB
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Build dependencies (gateway, controller, handlers...)
	deps := BuildDependencies(db, cfg)

	// Seed, load the first snapshot and render the dashboard
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := deps.Controller.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r, deps)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Host,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s (%s storage)", a.srv.Addr, a.db.Driver)
	defer a.close()
	return a.srv.ListenAndServe()
}

func (a *Application) close() {
	a.deps.Controller.Close()
	if err := a.db.Close(); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
}
