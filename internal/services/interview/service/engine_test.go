package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"shopguide/internal/core/schema"
	perr "shopguide/internal/platform/errors"
	"shopguide/internal/platform/testkit"
	"shopguide/internal/services/interview/domain"
)

type stubClassifier struct {
	c     domain.Classification
	err   error
	calls int
}

func (s *stubClassifier) Classify(context.Context, string, []schema.Schema) (domain.Classification, error) {
	s.calls++
	return s.c, s.err
}

// scriptExtractor replays one extraction per call, then empty ones
type scriptExtractor struct {
	script []domain.Extraction
	err    error
	calls  int
}

func (s *scriptExtractor) Extract(context.Context, string, map[string]string) (domain.Extraction, error) {
	defer func() { s.calls++ }()
	if s.err != nil {
		return domain.Extraction{}, s.err
	}
	if s.calls < len(s.script) {
		return s.script[s.calls], nil
	}
	return domain.Extraction{}, nil
}

type stubGenerator struct {
	err   error
	block bool
	reqs  []domain.GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Generated, error) {
	s.reqs = append(s.reqs, req)
	if s.block {
		<-ctx.Done()
		return domain.Generated{}, ctx.Err()
	}
	if s.err != nil {
		return domain.Generated{}, s.err
	}
	return domain.Generated{Question: "Q:" + req.Slot.Name, QuickReplies: []string{"a", "b"}}, nil
}

func electronics() *stubClassifier {
	return &stubClassifier{c: domain.Classification{Domain: "electronics", Confidence: 0.9}}
}

func newEngine(t *testing.T, cls domain.Classifier, ext domain.Extractor, gen domain.Generator, cfg Config) *Engine {
	t.Helper()
	return NewEngine(schema.MustDefault(), cls, ext, gen, cfg)
}

func newSession(maxQ int) *domain.Session {
	return domain.NewSession("s1", maxQ, time.Unix(0, 0))
}

func mustQuestion(t *testing.T, r domain.Reply, err error, slot string) *domain.Question {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != domain.ReplyQuestion || r.Question == nil {
		t.Fatalf("want question for %s, got %+v", slot, r)
	}
	if r.Question.Slot != slot {
		t.Fatalf("want slot %s, got %s", slot, r.Question.Slot)
	}
	return r.Question
}

func mustHandoff(t *testing.T, r domain.Reply, err error, reason domain.HandoffReason) *domain.Handoff {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != domain.ReplyHandoff || r.Handoff == nil {
		t.Fatalf("want handoff, got %+v", r)
	}
	if r.Handoff.Reason != reason {
		t.Fatalf("want reason %s, got %s", reason, r.Handoff.Reason)
	}
	return r.Handoff
}

func TestInterview_ThreeQuestionsThenHandoff(t *testing.T) {
	ext := &scriptExtractor{script: []domain.Extraction{
		{},
		{Criteria: []domain.Criterion{{Slot: "use_case", Value: "gaming"}}},
		{Criteria: []domain.Criterion{{Slot: "budget", Value: "under $1500"}}},
		{Criteria: []domain.Criterion{{Slot: "brand", Value: "ASUS"}}},
	}}
	cls := electronics()
	e := newEngine(t, cls, ext, &stubGenerator{}, DefaultConfig())
	s := newSession(3)
	ctx := context.Background()

	r, err := e.ProcessMessage(ctx, s, "I need a laptop")
	q := mustQuestion(t, r, err, "use_case")
	if !slices.Equal(q.InviteTopics, []string{"budget"}) {
		t.Fatalf("invite topics: %v", q.InviteTopics)
	}
	if s.Phase != domain.PhaseInterview || s.Domain != "electronics" {
		t.Fatalf("session: phase=%s domain=%s", s.Phase, s.Domain)
	}

	r, err = e.ProcessMessage(ctx, s, "gaming")
	q = mustQuestion(t, r, err, "budget")
	if !slices.Equal(q.InviteTopics, []string{"brand", "screen_size"}) {
		t.Fatalf("invite topics: %v", q.InviteTopics)
	}

	r, err = e.ProcessMessage(ctx, s, "under $1500")
	mustQuestion(t, r, err, "brand")

	r, err = e.ProcessMessage(ctx, s, "ASUS")
	h := mustHandoff(t, r, err, domain.ReasonBudget)
	if h.QuestionCount != 3 {
		t.Fatalf("question count: %d", h.QuestionCount)
	}
	if h.Filters["use_case"] != "gaming" || h.Filters["budget"] != "under $1500" || h.Filters["brand"] != "ASUS" {
		t.Fatalf("filters: %v", h.Filters)
	}
	if !slices.Equal(h.QuestionsAsked, []string{"use_case", "budget", "brand"}) {
		t.Fatalf("asked: %v", h.QuestionsAsked)
	}
	if s.Phase != domain.PhaseSearch {
		t.Fatalf("phase: %s", s.Phase)
	}
	if cls.calls != 1 {
		t.Fatalf("classifier should run once, ran %d", cls.calls)
	}
}

func TestInterview_QuestionBudgetForcesHandoff(t *testing.T) {
	e := newEngine(t, electronics(), &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	s := newSession(2)
	ctx := context.Background()

	r, err := e.ProcessMessage(ctx, s, "I need a laptop")
	mustQuestion(t, r, err, "use_case")
	r, err = e.ProcessMessage(ctx, s, "hmm")
	mustQuestion(t, r, err, "budget")
	r, err = e.ProcessMessage(ctx, s, "not sure")
	h := mustHandoff(t, r, err, domain.ReasonBudget)
	if h.QuestionCount != 2 {
		t.Fatalf("question count: %d", h.QuestionCount)
	}
}

func TestNeverReasksAndStopsAtLowTier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FastPath = false
	e := newEngine(t, electronics(), &scriptExtractor{}, &stubGenerator{}, cfg)
	s := newSession(10)
	ctx := context.Background()

	var slots []string
	for range 10 {
		r, err := e.ProcessMessage(ctx, s, "no idea")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Kind == domain.ReplyHandoff {
			if r.Handoff.Reason != domain.ReasonSlotsExhausted {
				t.Fatalf("reason: %s", r.Handoff.Reason)
			}
			break
		}
		slots = append(slots, r.Question.Slot)
	}
	want := []string{"use_case", "budget", "brand", "screen_size"}
	if !slices.Equal(slots, want) {
		t.Fatalf("asked %v, want %v", slots, want)
	}
	if s.QuestionCount != len(want) || len(s.QuestionsAsked) != len(want) {
		t.Fatalf("count=%d asked=%v", s.QuestionCount, s.QuestionsAsked)
	}
}

func TestHighFilledKeepsAsking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FastPath = false
	ext := &scriptExtractor{script: []domain.Extraction{{Criteria: []domain.Criterion{
		{Slot: "use_case", Value: "work"},
		{Slot: "budget", Value: "$1000"},
	}}}}
	e := newEngine(t, electronics(), ext, &stubGenerator{}, cfg)
	r, err := e.ProcessMessage(context.Background(), newSession(3), "a work laptop for $1000")
	mustQuestion(t, r, err, "brand")
}

func TestFastPath_OpeningTurnOnly(t *testing.T) {
	e := newEngine(t, electronics(), &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	s := newSession(3)
	r, err := e.ProcessMessage(context.Background(), s, "Dell XPS laptop with RTX 4070 under $2000")
	h := mustHandoff(t, r, err, domain.ReasonSpecific)
	if h.QuestionCount != 0 {
		t.Fatalf("question count: %d", h.QuestionCount)
	}

	s = newSession(3)
	r, err = e.ProcessMessage(context.Background(), s, "something nice")
	mustQuestion(t, r, err, "use_case")
	r, err = e.ProcessMessage(context.Background(), s, "Dell XPS laptop with RTX 4070 under $2000")
	mustQuestion(t, r, err, "budget")
}

func TestIntentFlagsHandOff(t *testing.T) {
	tests := []struct {
		name string
		ex   domain.Extraction
		want domain.HandoffReason
	}{
		{"impatient", domain.Extraction{IsImpatient: true}, domain.ReasonImpatient},
		{"recommend", domain.Extraction{WantsRecommendations: true}, domain.ReasonRecommendations},
		{"both", domain.Extraction{IsImpatient: true, WantsRecommendations: true}, domain.ReasonImpatient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &scriptExtractor{script: []domain.Extraction{tt.ex}}
			e := newEngine(t, electronics(), ext, &stubGenerator{}, DefaultConfig())
			r, err := e.ProcessMessage(context.Background(), newSession(3), "just show me laptops")
			mustHandoff(t, r, err, tt.want)
		})
	}
}

func TestUnknownDomainLoops(t *testing.T) {
	tests := []struct {
		name string
		cls  *stubClassifier
		cfg  func(*Config)
	}{
		{"unknown", &stubClassifier{c: domain.Classification{Domain: "unknown", Confidence: 1}}, nil},
		{"empty", &stubClassifier{}, nil},
		{"error", &stubClassifier{err: errors.New("model down")}, nil},
		{"low confidence", &stubClassifier{c: domain.Classification{Domain: "books", Confidence: 0.2}},
			func(c *Config) { c.MinConfidence = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			e := newEngine(t, tt.cls, &scriptExtractor{}, &stubGenerator{}, cfg)
			s := newSession(3)
			for range 2 {
				r, err := e.ProcessMessage(context.Background(), s, "hello there")
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.Kind != domain.ReplyClarify {
					t.Fatalf("want clarify, got %s", r.Kind)
				}
				if r.Question.Text != "What are you shopping for today? I can help you find electronics, books or home." {
					t.Fatalf("text: %q", r.Question.Text)
				}
				if !slices.Equal(r.Question.QuickReplies, []string{"Electronics", "Books", "Home"}) {
					t.Fatalf("quick replies: %v", r.Question.QuickReplies)
				}
			}
			if s.Domain != "" || s.Phase != domain.PhaseIntentDetection || s.QuestionCount != 0 {
				t.Fatalf("session: %+v", s)
			}
		})
	}
}

func TestClassifierDomainIsNormalized(t *testing.T) {
	cls := &stubClassifier{c: domain.Classification{Domain: " Books ", Confidence: 0.8}}
	e := newEngine(t, cls, &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	s := newSession(3)
	r, err := e.ProcessMessage(context.Background(), s, "something to read")
	mustQuestion(t, r, err, "genre")
	if s.Domain != "books" {
		t.Fatalf("domain: %q", s.Domain)
	}
}

func TestUnknownSchemaHalts(t *testing.T) {
	cls := &stubClassifier{c: domain.Classification{Domain: "garden", Confidence: 0.9}}
	e := newEngine(t, cls, &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	s := newSession(3)

	_, err := e.ProcessMessage(context.Background(), s, "a new lawnmower")
	if !perr.IsCode(err, perr.ErrorCodeUnknownSchema) {
		t.Fatalf("want unknown schema, got %v", err)
	}
	if s.Phase != domain.PhaseHalted {
		t.Fatalf("phase: %s", s.Phase)
	}
	_, err = e.ProcessMessage(context.Background(), s, "anything")
	if !perr.IsCode(err, perr.ErrorCodeSessionHalted) {
		t.Fatalf("want session halted, got %v", err)
	}
}

func TestEmptyMessage(t *testing.T) {
	e := newEngine(t, electronics(), &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	s := newSession(3)
	_, err := e.ProcessMessage(context.Background(), s, "   ")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	if len(s.History) != 0 {
		t.Fatalf("history should be untouched: %v", s.History)
	}
}

func TestCriteriaMergedIncludingOffSchema(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FastPath = false
	ext := &scriptExtractor{script: []domain.Extraction{{Criteria: []domain.Criterion{
		{Slot: "warp_drive", Value: "yes"},
		{Slot: "USE_CASE", Value: " school "},
		{Slot: "budget", Value: ""},
	}}}}
	e := newEngine(t, electronics(), ext, &stubGenerator{}, cfg)
	s := newSession(3)
	r, err := e.ProcessMessage(context.Background(), s, "a laptop for school")
	mustQuestion(t, r, err, "budget")
	if len(s.Filters) != 2 || s.Filters["use_case"] != "school" || s.Filters["warp_drive"] != "yes" {
		t.Fatalf("filters: %v", s.Filters)
	}
	if slices.Contains(s.QuestionsAsked, "warp_drive") {
		t.Fatalf("off schema pairs are never asked about: %v", s.QuestionsAsked)
	}
}

func TestCapabilityFailuresFallBack(t *testing.T) {
	ext := &scriptExtractor{err: errors.New("extract down")}
	gen := &stubGenerator{err: errors.New("generate down")}
	e := newEngine(t, electronics(), ext, gen, DefaultConfig())
	s := newSession(3)

	r, err := e.ProcessMessage(context.Background(), s, "I need a laptop")
	q := mustQuestion(t, r, err, "use_case")
	want := "What will you mainly use it for? Feel free to also mention any budget preference."
	if q.Text != want {
		t.Fatalf("text: %q", q.Text)
	}
	if !slices.Equal(q.QuickReplies, []string{"Gaming", "School", "Work", "Creative work", "Everyday browsing"}) {
		t.Fatalf("quick replies: %v", q.QuickReplies)
	}
	if s.QuestionCount != 1 {
		t.Fatalf("question count: %d", s.QuestionCount)
	}
}

func TestGeneratorTimeoutFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CapabilityTimeout = 10 * time.Millisecond
	gen := &stubGenerator{block: true}
	e := newEngine(t, electronics(), &scriptExtractor{}, gen, cfg)

	r, err := e.ProcessMessage(context.Background(), newSession(3), "I need a laptop")
	q := mustQuestion(t, r, err, "use_case")
	testkit.MustContain(t, q.Text, "What will you mainly use it for?")
}

func TestGeneratedQuestionUsed(t *testing.T) {
	gen := &stubGenerator{}
	e := newEngine(t, electronics(), &scriptExtractor{}, gen, DefaultConfig())
	s := newSession(3)
	r, err := e.ProcessMessage(context.Background(), s, "I need a laptop")
	q := mustQuestion(t, r, err, "use_case")
	if q.Text != "Q:use_case" || !slices.Equal(q.QuickReplies, []string{"a", "b"}) {
		t.Fatalf("question: %+v", q)
	}
	if len(gen.reqs) != 1 || gen.reqs[0].Domain != "electronics" || len(gen.reqs[0].InviteTopics) != 1 {
		t.Fatalf("generate requests: %+v", gen.reqs)
	}
	last := s.History[len(s.History)-1]
	if last.Role != domain.RoleAssistant || last.Text != "Q:use_case" {
		t.Fatalf("history: %+v", s.History)
	}
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	testkit.MustPanic(t, func() {
		NewEngine(schema.MustDefault(), nil, &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	})
	testkit.MustPanic(t, func() {
		NewEngine(nil, electronics(), &scriptExtractor{}, &stubGenerator{}, DefaultConfig())
	})
}
