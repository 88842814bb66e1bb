package httpkit

import (
	"context"
	"net/http"

	"shopguide/internal/platform/logger"
	pnet "shopguide/internal/platform/net"
)

// WithSession tags the request context with a discovery session id for
// both context lookups and log lines
func WithSession(r *http.Request, sessionID string) context.Context {
	ctx := pnet.WithRequest(r.Context(), "", sessionID)
	return logger.WithSession(ctx, sessionID)
}
