// Package module wires the discovery endpoints into the API
package module

import (
	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	modkit "shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"

	dhttp "shopguide/internal/services/api/discovery/http"
	idom "shopguide/internal/services/interview/domain"
	sdom "shopguide/internal/services/search/domain"
)

// Ports declares the injected service ports this API module calls
type Ports struct {
	Conversations idom.ConversationPort
	Search        sdom.ServicePort
	Registry      *schema.Registry
	Scorer        *specificity.Scorer
}

// Module mounts /discovery
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the discovery module; Ports must be injected with modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("discovery"),
		modkit.WithPrefix("/discovery"),
	}, opts...)...)

	p, _ := b.Ports.(Ports)
	if p.Conversations == nil || p.Search == nil || p.Registry == nil {
		panic("discovery API module requires Conversations, Search and Registry ports")
	}
	if p.Scorer == nil {
		p.Scorer = specificity.New(specificity.DefaultPolicy())
	}
	return &Module{b: b, ports: p}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		dhttp.Register(rr, dhttp.Deps{
			Conversations: m.ports.Conversations,
			Search:        m.ports.Search,
			Registry:      m.ports.Registry,
			Scorer:        m.ports.Scorer,
		})
	})
}

func (m *Module) Name() string { return m.b.Name }

// Ports returns the injected ports with the default scorer filled in
func (m *Module) Ports() any { return m.ports }
