// Package module wires search telemetry stats into the API
package module

import (
	modkit "shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"

	statsdomain "shopguide/internal/services/api/stats/domain"
	statshttp "shopguide/internal/services/api/stats/http"
	statsrepo "shopguide/internal/services/api/stats/repo"
	statssvc "shopguide/internal/services/api/stats/service"
)

// Ports exposes the stats service to other modules
type Ports struct {
	Stats statsdomain.ServicePort
}

// Module mounts /stats
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the stats module; without clickhouse the routes answer 503
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	var repo statsrepo.Repo
	if deps.CH != nil {
		repo = statsrepo.NewCH(deps.CH)
	}
	return &Module{
		b:     modkit.Build(append([]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")}, opts...)...),
		ports: Ports{Stats: statssvc.New(repo)},
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { statshttp.Register(rr, m.ports.Stats) })
}

func (m *Module) Name() string { return m.b.Name }
func (m *Module) Ports() any   { return m.ports }
