package modkit

import (
	"net/http"

	"shopguide/internal/modkit/httpkit"
)

// Option adjusts how a module is named and mounted
type Option func(*Built)

// WithName sets the name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the path the module is routed under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the port set a module consumes; the concrete type is
// owned by that module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRoutes registers extra endpoints after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.extra = append(b.extra, fn) }
}
