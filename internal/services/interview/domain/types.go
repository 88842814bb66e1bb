// Package domain defines interview sessions, turn results and capability ports
package domain

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// Phase is where a session sits in the discovery flow
type Phase string

const (
	// PhaseIntentDetection waits for a classifiable first message
	PhaseIntentDetection Phase = "intent_detection"
	// PhaseInterview gathers slot values
	PhaseInterview Phase = "interview"
	// PhaseSearch has handed off and is waiting for results
	PhaseSearch Phase = "search"
	// PhaseComplete has results; a further turn refines them
	PhaseComplete Phase = "complete"
	// PhaseHalted is terminal, the domain had no schema
	PhaseHalted Phase = "halted"
)

// Roles for history turns
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of the conversation
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is the interview state persisted between turns
type Session struct {
	ID             string            `json:"id"`
	Domain         string            `json:"domain,omitempty"`
	Filters        map[string]string `json:"filters"`
	QuestionCount  int               `json:"question_count"`
	QuestionsAsked []string          `json:"questions_asked"`
	History        []Turn            `json:"history"`
	MaxQuestions   int               `json:"max_questions"`
	Phase          Phase             `json:"phase"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewSession starts a session in intent detection
func NewSession(id string, maxQuestions int, now time.Time) *Session {
	return &Session{
		ID:             id,
		Filters:        map[string]string{},
		QuestionsAsked: []string{},
		History:        []Turn{},
		MaxQuestions:   maxQuestions,
		Phase:          PhaseIntentDetection,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Clone deep copies s
func (s *Session) Clone() *Session {
	out := *s
	out.Filters = maps.Clone(s.Filters)
	out.QuestionsAsked = slices.Clone(s.QuestionsAsked)
	out.History = slices.Clone(s.History)
	return &out
}

// Asked reports whether slot was already asked
func (s *Session) Asked(slot string) bool { return slices.Contains(s.QuestionsAsked, slot) }

// MarkAsked counts a question for slot; a slot is recorded once
func (s *Session) MarkAsked(slot string) {
	s.QuestionCount++
	if !s.Asked(slot) {
		s.QuestionsAsked = append(s.QuestionsAsked, slot)
	}
}

// Merge writes values into filters, last write wins
func (s *Session) Merge(vals map[string]string) {
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	for k, v := range vals {
		s.Filters[k] = v
	}
}

// ResetDomain returns the session to intent detection
func (s *Session) ResetDomain() {
	s.Domain = ""
	s.Phase = PhaseIntentDetection
}

// Say appends a history turn
func (s *Session) Say(role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
}

// UserText joins every user turn, oldest first
func (s *Session) UserText() string {
	var parts []string
	for _, t := range s.History {
		if t.Role == RoleUser {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Question is the clarifying question returned for one turn
type Question struct {
	Slot         string   `json:"slot,omitempty"`
	Text         string   `json:"text"`
	QuickReplies []string `json:"quick_replies"`
	Topic        string   `json:"topic,omitempty"`
	InviteTopics []string `json:"invite_topics,omitempty"`
}

// HandoffReason says which condition ended the interview
type HandoffReason string

const (
	ReasonImpatient       HandoffReason = "impatient"
	ReasonRecommendations HandoffReason = "wants_recommendations"
	ReasonBudget          HandoffReason = "question_budget"
	ReasonSlotsExhausted  HandoffReason = "slots_exhausted"
	ReasonSpecific        HandoffReason = "specific_query"
)

// Handoff ends filter gathering
type Handoff struct {
	Domain         string            `json:"domain"`
	SchemaID       string            `json:"schema_id"`
	Filters        map[string]string `json:"filters"`
	QuestionCount  int               `json:"question_count"`
	QuestionsAsked []string          `json:"questions_asked"`
	Reason         HandoffReason     `json:"reason"`
}

// ReplyKind tags a turn result
type ReplyKind string

const (
	ReplyQuestion ReplyKind = "question"
	ReplyClarify  ReplyKind = "clarify"
	ReplyHandoff  ReplyKind = "handoff"
)

// Reply is the result of one processed message; exactly one of Question or Handoff is set
type Reply struct {
	Kind     ReplyKind `json:"kind"`
	Question *Question `json:"question,omitempty"`
	Handoff  *Handoff  `json:"handoff,omitempty"`
}
