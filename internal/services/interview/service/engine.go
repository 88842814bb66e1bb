// Package service implements the interview state machine and the conversation
// flow that persists sessions and runs the search on handoff
package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	perr "shopguide/internal/platform/errors"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/interview/domain"
)

// Config holds the interview policy
type Config struct {
	// MaxQuestions is the default question budget for new sessions
	MaxQuestions int
	// CapabilityTimeout bounds each classify, extract and generate call
	CapabilityTimeout time.Duration
	// MinConfidence below which a classification counts as unknown
	MinConfidence float64
	// FastPath hands off on the opening turn when the text is already specific
	FastPath bool
}

// DefaultConfig returns the documented policy
func DefaultConfig() Config {
	return Config{
		MaxQuestions:      3,
		CapabilityTimeout: 8 * time.Second,
		FastPath:          true,
	}
}

// Engine runs one turn of the interview against a caller owned session
type Engine struct {
	registry   *schema.Registry
	classifier domain.Classifier
	extractor  domain.Extractor
	generator  domain.Generator
	scorer     *specificity.Scorer
	cfg        Config
	log        *logger.Logger
}

var _ domain.EnginePort = (*Engine)(nil)

// EngineOption customizes an Engine
type EngineOption func(*Engine)

// WithScorer replaces the specificity scorer used by the fast path
func WithScorer(s *specificity.Scorer) EngineOption {
	return func(e *Engine) { e.scorer = s }
}

// WithEngineLogger sets the logger
func WithEngineLogger(l *logger.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// NewEngine wires the engine; every collaborator is required
func NewEngine(reg *schema.Registry, cls domain.Classifier, ext domain.Extractor, gen domain.Generator, cfg Config, opts ...EngineOption) *Engine {
	if reg == nil || cls == nil || ext == nil || gen == nil {
		panic("interview: engine requires a registry, classifier, extractor and generator")
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultConfig().MaxQuestions
	}
	e := &Engine{
		registry:   reg,
		classifier: cls,
		extractor:  ext,
		generator:  gen,
		scorer:     specificity.New(specificity.DefaultPolicy()),
		cfg:        cfg,
		log:        logger.Named("interview"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Config returns the engine policy
func (e *Engine) Config() Config { return e.cfg }

// ProcessMessage advances s by one user message
// s is mutated in place and must not be shared across concurrent turns
func (e *Engine) ProcessMessage(ctx context.Context, s *domain.Session, text string) (domain.Reply, error) {
	if s == nil {
		return domain.Reply{}, perr.InvalidArgf("nil session")
	}
	if s.Phase == domain.PhaseHalted {
		return domain.Reply{}, perr.SessionHaltedf("session %s has ended", s.ID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Reply{}, perr.WithField(perr.InvalidArgf("message is empty"), "text")
	}
	if s.MaxQuestions <= 0 {
		s.MaxQuestions = e.cfg.MaxQuestions
	}
	s.Say(domain.RoleUser, text)
	log := logger.C(ctx).With().Str("component", "interview").Logger()

	if s.Domain == "" {
		c := e.classify(ctx, text)
		if c.Domain == "" {
			log.Info().Str("condition", "unknown_domain").Msg("asking for a domain")
			s.ResetDomain()
			q := e.clarify()
			s.Say(domain.RoleAssistant, q.Text)
			return domain.Reply{Kind: domain.ReplyClarify, Question: &q}, nil
		}
		s.Domain = c.Domain
		log.Debug().Str("domain", c.Domain).Float64("confidence", c.Confidence).Msg("domain classified")
	}

	sch, ok := e.registry.Lookup(s.Domain)
	if !ok {
		s.Phase = domain.PhaseHalted
		log.Warn().Str("domain", s.Domain).Msg("no schema for domain; session halted")
		return domain.Reply{}, perr.UnknownSchemaf("no schema registered for domain %q", s.Domain)
	}
	s.Phase = domain.PhaseInterview

	ex := e.extract(ctx, text, sch)
	s.Merge(acceptCriteria(sch, ex.Criteria))

	reason := e.handoffReason(s, ex)
	if reason == "" {
		slot, found := NextMissingSlot(sch, s.Filters, s.QuestionsAsked)
		if found {
			invite := InviteTopics(sch, slot, s.Filters, s.QuestionsAsked)
			q := e.generate(ctx, sch, slot, s.Filters, invite)
			s.MarkAsked(slot.Name)
			s.Say(domain.RoleAssistant, q.Text)
			log.Debug().Str("slot", slot.Name).Int("question_count", s.QuestionCount).Msg("question")
			return domain.Reply{Kind: domain.ReplyQuestion, Question: &q}, nil
		}
		reason = domain.ReasonSlotsExhausted
	}

	s.Phase = domain.PhaseSearch
	h := domain.Handoff{
		Domain:         s.Domain,
		SchemaID:       sch.Domain,
		Filters:        maps.Clone(s.Filters),
		QuestionCount:  s.QuestionCount,
		QuestionsAsked: slices.Clone(s.QuestionsAsked),
		Reason:         reason,
	}
	log.Info().Str("domain", s.Domain).Str("reason", string(reason)).Int("question_count", s.QuestionCount).Msg("handoff")
	return domain.Reply{Kind: domain.ReplyHandoff, Handoff: &h}, nil
}

// handoffReason is empty while the interview should keep asking
// all HIGH slots being filled is deliberately not a reason
func (e *Engine) handoffReason(s *domain.Session, ex domain.Extraction) domain.HandoffReason {
	switch {
	case ex.IsImpatient:
		return domain.ReasonImpatient
	case ex.WantsRecommendations:
		return domain.ReasonRecommendations
	case s.QuestionCount >= s.MaxQuestions:
		return domain.ReasonBudget
	case e.cfg.FastPath && s.QuestionCount == 0 && e.scorer.Evaluate(s.UserText(), nil).Specific:
		return domain.ReasonSpecific
	}
	return ""
}

// acceptCriteria merges every pair with a value; names matching a schema slot
// case insensitively take the slot's spelling, others pass through for Soft
func acceptCriteria(sch schema.Schema, cs []domain.Criterion) map[string]string {
	out := make(map[string]string, len(cs))
	for _, c := range cs {
		name := strings.TrimSpace(c.Slot)
		val := strings.TrimSpace(c.Value)
		if name == "" || val == "" {
			continue
		}
		if sl, ok := sch.Slot(strings.ToLower(name)); ok {
			name = sl.Name
		}
		out[name] = val
	}
	return out
}

func (e *Engine) capCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.CapabilityTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.CapabilityTimeout)
}

// classify returns an empty Classification for any failure or weak verdict
func (e *Engine) classify(ctx context.Context, text string) domain.Classification {
	cctx, cancel := e.capCtx(ctx)
	defer cancel()

	c, err := e.classifier.Classify(cctx, text, e.registry.All())
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("condition", "unknown_domain").Msg("classifier failed")
		return domain.Classification{}
	}
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	if c.Domain == "unknown" || c.Confidence < e.cfg.MinConfidence {
		return domain.Classification{}
	}
	return c
}

// extract returns an empty Extraction on failure
func (e *Engine) extract(ctx context.Context, text string, sch schema.Schema) domain.Extraction {
	cctx, cancel := e.capCtx(ctx)
	defer cancel()

	ex, err := e.extractor.Extract(cctx, text, sch.Descriptions())
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("condition", "extraction_failure").Msg("extractor failed; no criteria this turn")
		return domain.Extraction{}
	}
	return ex
}

// generate falls back to the slot's example question plus the invite suffix
func (e *Engine) generate(ctx context.Context, sch schema.Schema, slot schema.Slot, known map[string]string, invite []schema.Slot) domain.Question {
	cctx, cancel := e.capCtx(ctx)
	defer cancel()

	q := domain.Question{Slot: slot.Name, Topic: slot.Name, InviteTopics: slotNames(invite)}
	g, err := e.generator.Generate(cctx, domain.GenerateRequest{
		Domain:       sch.Domain,
		Slot:         slot,
		Known:        maps.Clone(known),
		InviteTopics: invite,
	})
	if err != nil || strings.TrimSpace(g.Question) == "" {
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("condition", "question_gen_failure").Str("slot", slot.Name).
				Msg("generator failed; using fallback question")
		}
		q.Text = FallbackQuestion(slot, invite)
		q.QuickReplies = slices.Clone(slot.ExampleReplies)
		return q
	}
	q.Text = strings.TrimSpace(g.Question)
	q.QuickReplies = g.QuickReplies
	if len(q.QuickReplies) == 0 {
		q.QuickReplies = slices.Clone(slot.ExampleReplies)
	}
	if g.Topic != "" {
		q.Topic = g.Topic
	}
	return q
}

// FallbackQuestion is the deterministic question for slot
func FallbackQuestion(slot schema.Slot, invite []schema.Slot) string {
	base := strings.TrimSpace(slot.ExampleQuestion)
	if base == "" {
		name := slot.DisplayName
		if name == "" {
			name = strings.ReplaceAll(slot.Name, "_", " ")
		}
		base = "Any preference on " + strings.ToLower(name) + "?"
	}
	return base + inviteSuffix(invite)
}

// clarify lists the registered domains
func (e *Engine) clarify() domain.Question {
	var names []string
	for _, s := range e.registry.All() {
		n := s.Category
		if n == "" {
			n = s.Domain
		}
		names = append(names, n)
	}
	text := "What are you shopping for today?"
	if len(names) > 0 {
		list := strings.ToLower(names[0])
		if len(names) > 1 {
			lower := make([]string, len(names))
			for i, n := range names {
				lower[i] = strings.ToLower(n)
			}
			list = strings.Join(lower[:len(lower)-1], ", ") + " or " + lower[len(lower)-1]
		}
		text += " I can help you find " + list + "."
	}
	return domain.Question{Text: text, QuickReplies: names, Topic: "domain"}
}

func slotNames(ss []schema.Slot) []string {
	if len(ss) == 0 {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}
