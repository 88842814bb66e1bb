// Package api provides the HTTP API for the application
package api

import (
	"github.com/cloudwego/eino/components/model"

	"shopguide/internal/platform/config"
	"shopguide/internal/platform/logger"
	phttp "shopguide/internal/platform/net/http"
	"shopguide/internal/platform/store"

	"shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"
	"shopguide/internal/modkit/module"
	"shopguide/internal/modkit/swaggerkit"

	discoverymod "shopguide/internal/services/api/discovery/module"
	metamod "shopguide/internal/services/api/meta/module"
	statsmod "shopguide/internal/services/api/stats/module"

	interviewmod "shopguide/internal/services/interview/module"
	searchmod "shopguide/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Chat           model.BaseChatModel
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:  opt.Config,
		Chat: opt.Chat,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.Redis = opt.Store.Redis
	}

	// search owns the relaxation ladder; the interview hands off into it
	search := searchmod.New(deps)
	sp := module.MustPortsOf[searchmod.Ports](search)

	interview := interviewmod.New(deps, sp.Search)
	ip := module.MustPortsOf[interviewmod.Ports](interview)

	discovery := discoverymod.New(
		deps,
		modkit.WithPorts(discoverymod.Ports{
			Conversations: ip.Conversations,
			Search:        sp.Search,
			Registry:      ip.Registry,
			Scorer:        ip.Scorer,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		search,
		interview,
		discovery,
		statsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// registered names feed /meta/capabilities
			module.Register(m.Name(), m.Ports())

			// each module routes itself under its prefix
			m.MountRoutes(api)
		}
	})
}
