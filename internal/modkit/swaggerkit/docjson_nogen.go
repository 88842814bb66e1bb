//go:build !swag

// Package swaggerkit mounts the swagger UI and the OpenAPI document
package swaggerkit

import "net/http"

// skeleton keeps the UI loadable in builds without generated docs; it lists
// the discovery routes so the page is not empty
const skeleton = `{"openapi":"3.0.3","info":{"title":"Shopguide API","version":"0.0.0"},` +
	`"servers":[{"url":"/api/v1"}],"paths":{` +
	`"/discovery/sessions":{"post":{"summary":"Start a discovery session","responses":{"201":{"description":"Created"}}}},` +
	`"/discovery/sessions/{id}/messages":{"post":{"summary":"Send a shopper message","responses":{"200":{"description":"OK"}}}},` +
	`"/discovery/search":{"post":{"summary":"Search with relaxation","responses":{"200":{"description":"OK"}}}},` +
	`"/discovery/score":{"post":{"summary":"Score query specificity","responses":{"200":{"description":"OK"}}}}}}`

var docReader = func() string { return skeleton }

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}
