// Package modkit wires feature modules onto the API router
package modkit

import "shopguide/internal/modkit/module"

// Module is what the composition root mounts and cross wires
type Module = module.Module
