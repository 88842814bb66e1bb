// Package module wires the meta endpoints into the API
package module

import (
	"time"

	modkit "shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"
	"shopguide/internal/modkit/module"

	metahttp "shopguide/internal/services/api/meta/http"
)

// Module mounts /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module; its capability report reflects which of
// deps are present
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		b: modkit.Build(append([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...)...),
		deps: metahttp.Deps{
			ServiceName: "shopguide-api",
			StartedAt:   time.Now(),
			PG:          deps.PG,
			CH:          deps.CH,
			Redis:       deps.Redis,
			LLM:         deps.Chat != nil,
			Modules:     module.Names,
		},
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

func (m *Module) Name() string { return m.b.Name }
func (m *Module) Ports() any   { return nil }
