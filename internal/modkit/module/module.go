// Package module defines the contract a feature module exposes and the
// helpers that cross wire port sets between modules
package module

import phttp "shopguide/internal/platform/net/http"

// Module is mounted by the composition root; service modules with no
// routes still expose their ports through it
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}
