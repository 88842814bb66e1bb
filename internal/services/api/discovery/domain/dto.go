// Package domain holds the request and response shapes of the discovery API
package domain

import (
	"shopguide/internal/core/filters"
	"shopguide/internal/core/schema"
)

// MessageInput is one shopper message
type MessageInput struct {
	Text       string   `json:"text"                  validate:"required,notblank,max=2000"`
	ExcludeIDs []string `json:"exclude_ids,omitempty" validate:"max=500"`
}

// SearchInput runs the relaxation ladder directly
type SearchInput struct {
	Filters    filters.SearchFilters `json:"filters"`
	Limit      int                   `json:"limit,omitempty"       validate:"gte=0,lte=200"`
	ExcludeIDs []string              `json:"exclude_ids,omitempty" validate:"max=500"`
}

// ScoreInput asks whether a query is specific enough to search
type ScoreInput struct {
	Query   string                 `json:"query"             validate:"required,max=1000"`
	Filters *filters.SearchFilters `json:"filters,omitempty"`
}

// SessionCreated is returned by session creation
type SessionCreated struct {
	SessionID    string `json:"session_id"`
	MaxQuestions int    `json:"max_questions"`
}

// DomainsView lists the registered schemas
type DomainsView struct {
	Domains []schema.Schema `json:"domains"`
}
