//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"shopguide/internal/platform/config"

	docs "shopguide/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator; call it from module init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// envelope responses every operation may produce; the discovery routes add
// the interview and search specific failures
var (
	commonErrors = map[string]errorExample{
		"400": {"Bad Request", 5, "message: required"},
		"500": {"Internal Server Error", 1, "panic recovered"},
	}
	discoveryErrors = map[string]errorExample{
		"409": {"Conflict", 12, "session 4f0c has ended"},
		"422": {"Unprocessable Entity", 10, `no schema registered for domain "garden"`},
		"502": {"Bad Gateway", 11, "search failed"},
	}
)

type errorExample struct {
	status string
	code   int
	msg    string
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		toOAS3(spec, "/api/v1")

		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		errorSchema(spec)
		eachOperation(spec, func(path string, op map[string]any) {
			addErrors(op, commonErrors)
			if strings.HasPrefix(path, "/discovery") {
				addErrors(op, discoveryErrors)
			}
		})
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// toOAS3 lifts swagger 2 and downsamples 3.1 since the UI only renders 3.0
func toOAS3(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// errorSchema mirrors the runtime envelope written by phttp.Error
func errorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func eachOperation(spec map[string]any, fn func(path string, op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for path, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range node {
			if op, ok := v.(map[string]any); ok {
				fn(path, op)
			}
		}
	}
}

func addErrors(op map[string]any, examples map[string]errorExample) {
	responses := child(op, "responses")
	for status, ex := range examples {
		if _, exists := responses[status]; exists {
			continue
		}
		responses[status] = map[string]any{
			"description": ex.status,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
					"example": map[string]any{
						"status":     ex.status,
						"code":       ex.code,
						"error":      ex.msg,
						"request_id": "a1b2c3d4e5f6/req-000001",
					},
				},
			},
		}
	}
}

// child returns m[key] as a map, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
