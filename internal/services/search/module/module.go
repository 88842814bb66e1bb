// Package module implements the search service module
package module

import (
	"context"
	"time"

	"shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/search/domain"
	"shopguide/internal/services/search/repo"
	"shopguide/internal/services/search/service"
)

// Ports exposed by the search module
type Ports struct {
	Search domain.ServicePort
}

// Module implements the search service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the search module; without postgres it searches an in
// process catalog loaded from CatalogPath
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	log := logger.Named("search")

	var st domain.StorePort
	switch {
	case deps.PG != nil:
		st = repo.NewPGTx(deps.PG, opts.StatementTimeout)
	case opts.CatalogPath != "":
		mem, err := repo.LoadMemory(opts.CatalogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("catalog load failed")
		}
		log.Info().Int("products", mem.Len()).Str("path", opts.CatalogPath).Msg("in memory catalog")
		st = mem
	default:
		log.Warn().Msg("no product store configured; searches return no results")
		st = repo.NewMemory()
	}

	if deps.CH != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureEventsTable(ctx, deps.CH); err != nil {
			log.Warn().Err(err).Msg("search_events table check failed; telemetry inserts may fail")
		}
		cancel()
	}

	svc := service.New(st, opts.Service, service.WithSink(repo.NewCHSink(deps.CH)), service.WithLogger(log))

	return &Module{deps: deps, ports: Ports{Search: svc}}
}

func (m *Module) Name() string { return "search" }
func (m *Module) Ports() any   { return m.ports }

// MountRoutes is a no-op; search is reached through the discovery API
func (m *Module) MountRoutes(httpkit.Router) {}
