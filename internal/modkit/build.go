package modkit

import (
	"net/http"

	"shopguide/internal/modkit/httpkit"
	str "shopguide/internal/platform/strings"
)

// Built is the resolved mount configuration of a module
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra []func(httpkit.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount routes the module under its prefix, installs its middleware, then
// registers routes followed by any WithRoutes extras
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		if routes != nil {
			routes(rr)
		}
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}
