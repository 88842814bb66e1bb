// Package docs registers the OpenAPI document served at /api/docs
// regenerate with: swag init --v3.1 -g cmd/shopguide-api/main.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.1.0",
  "info": {"title": "{{.Title}}", "description": "{{escape .Description}}", "version": "{{.Version}}"},
  "paths": {
    "/discovery/sessions": {
      "post": {"tags": ["discovery"], "summary": "Start a discovery session", "responses": {"201": {"description": "created"}}}
    },
    "/discovery/sessions/{id}": {
      "delete": {"tags": ["discovery"], "summary": "Forget a session",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"204": {"description": "no content"}}}
    },
    "/discovery/sessions/{id}/messages": {
      "post": {"tags": ["discovery"], "summary": "Send a shopper message",
        "description": "Returns a clarifying question, or the handoff with search results",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object",
          "properties": {"text": {"type": "string"}, "exclude_ids": {"type": "array", "items": {"type": "string"}}},
          "required": ["text"]}}}},
        "responses": {"200": {"description": "ok"}}}
    },
    "/discovery/search": {
      "post": {"tags": ["discovery"], "summary": "Search with relaxation", "responses": {"200": {"description": "ok"}}}
    },
    "/discovery/score": {
      "post": {"tags": ["discovery"], "summary": "Score query specificity", "responses": {"200": {"description": "ok"}}}
    },
    "/discovery/domains": {
      "get": {"tags": ["discovery"], "summary": "List shopping domains and their slots", "responses": {"200": {"description": "ok"}}}
    },
    "/stats/steps": {
      "post": {"tags": ["stats"], "summary": "Searches per relaxation step", "responses": {"200": {"description": "ok"}}}
    },
    "/stats/categories": {
      "post": {"tags": ["stats"], "summary": "Searches per category", "responses": {"200": {"description": "ok"}}}
    },
    "/meta/version": {
      "get": {"tags": ["meta"], "summary": "Build information", "responses": {"200": {"description": "ok"}}}
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shopguide API",
	Description:      "Conversational product discovery: clarifying interview, specificity scoring and relaxed catalog search",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
