package domain

import (
	"context"
	"time"

	"shopguide/internal/core/filters"
	"shopguide/internal/core/schema"
	sdomain "shopguide/internal/services/search/domain"
)

// Classification is the classifier verdict; an empty Domain means unknown
type Classification struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

// Criterion is one extracted slot value
type Criterion struct {
	Slot  string `json:"slot"`
	Value string `json:"value"`
}

// Extraction is what the extractor read out of one message
type Extraction struct {
	Criteria             []Criterion `json:"criteria"`
	Reasoning            string      `json:"reasoning,omitempty"`
	IsImpatient          bool        `json:"is_impatient"`
	WantsRecommendations bool        `json:"wants_recommendations"`
}

// GenerateRequest describes the question to phrase
type GenerateRequest struct {
	Domain       string
	Slot         schema.Slot
	Known        map[string]string
	InviteTopics []schema.Slot
}

// Generated is a phrased question
type Generated struct {
	Question     string   `json:"question"`
	QuickReplies []string `json:"quick_replies"`
	Topic        string   `json:"topic"`
}

// Classifier maps free text to a registered domain
type Classifier interface {
	Classify(ctx context.Context, text string, domains []schema.Schema) (Classification, error)
}

// Extractor reads slot values and intent flags out of a message
type Extractor interface {
	Extract(ctx context.Context, text string, slotDescriptions map[string]string) (Extraction, error)
}

// Generator phrases the question for a slot
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Generated, error)
}

// SessionStore persists sessions between turns
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// EnginePort processes one message against a session owned by the caller
type EnginePort interface {
	ProcessMessage(ctx context.Context, s *Session, text string) (Reply, error)
}

// TurnResult is a processed message plus search results on handoff
type TurnResult struct {
	SessionID string                 `json:"session_id"`
	Phase     Phase                  `json:"phase"`
	Reply     Reply                  `json:"reply"`
	Filters   *filters.SearchFilters `json:"filters,omitempty"`
	Results   *sdomain.Outcome       `json:"results,omitempty"`
}

// ConversationPort is the inbound surface for a request handler
type ConversationPort interface {
	Start(ctx context.Context) (*Session, error)
	Process(ctx context.Context, sessionID, text string, excludeIDs []string) (TurnResult, error)
	Reset(ctx context.Context, sessionID string) error
}
