// Package app wires the store, services and router for the entry points.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/adapters/handler"
	"github.com/wadjakorntonsri/weblinks/pkg/adapters/metrics"
	"github.com/wadjakorntonsri/weblinks/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/weblinks/pkg/config"
	"github.com/wadjakorntonsri/weblinks/pkg/core/services"
)

type App struct {
	Service *services.LinkService
	Handler http.Handler
	Metrics *metrics.Metrics

	repo *sqlite.SQLiteRepository
}

// New opens the store at cfg.DatabaseURL and builds the HTTP handler on top of it.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	m := metrics.New()
	service := services.NewLinkService(repo, log.Named("links"), services.WithObserver(m))
	controller := services.NewController(service, cfg.DiscoverCount, log.Named("controller"))

	return &App{
		Service: service,
		Handler: handler.NewRouter(cfg, log.Named("http"), m, controller, service),
		Metrics: m,
		repo:    repo,
	}, nil
}

func (a *App) Close() error {
	return a.repo.Close()
}
