// Package swaggerkit serves the discovery API reference
package swaggerkit

import (
	"net/http"

	phttp "shopguide/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives; doc.json is served beside it
const DocsPath = "/api/docs"

// Mount registers the UI, its OpenAPI document and a bare path redirect
// nothing is mounted when enabled is false so prod can hide the reference
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	spec := DocsPath + "/doc.json"
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(spec, serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(spec),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
	))
}
