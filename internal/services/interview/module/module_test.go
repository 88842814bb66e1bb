package module

import (
	"context"
	"testing"
	"time"

	"shopguide/internal/core/filters"
	"shopguide/internal/core/specificity"
	"shopguide/internal/modkit"
	"shopguide/internal/modkit/module"
	"shopguide/internal/platform/config"
	"shopguide/internal/services/interview/domain"
	sdomain "shopguide/internal/services/search/domain"
)

type stubSearch struct{ calls int }

func (s *stubSearch) Search(context.Context, filters.SearchFilters, int, []string) (sdomain.Outcome, error) {
	s.calls++
	return sdomain.Outcome{Products: []sdomain.Product{}, NoResults: true}, nil
}

func newConf() config.Conf { return config.New() }

func TestFromConfig_Defaults(t *testing.T) {
	o := FromConfig(newConf())
	if o.Engine.MaxQuestions != 3 || o.Engine.CapabilityTimeout != 8*time.Second || !o.Engine.FastPath {
		t.Fatalf("defaults = %+v", o.Engine)
	}
	if o.SessionTTL != 30*time.Minute || o.SchemaPath != "" {
		t.Fatalf("defaults = %+v", o)
	}
	if o.Policy != specificity.DefaultPolicy() {
		t.Fatalf("policy = %+v", o.Policy)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	t.Setenv("SPECIFICITY_THRESHOLD", "3.5")
	t.Setenv("SPECIFICITY_MIN_QUERY_LEN", "5")
	p := PolicyFromConfig(newConf())
	if p.Threshold != 3.5 || p.MinQueryLen != 5 || p.BrandType != specificity.DefaultPolicy().BrandType {
		t.Fatalf("policy = %+v", p)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("INTERVIEW_MAX_QUESTIONS", "2")
	t.Setenv("INTERVIEW_FAST_PATH", "false")
	t.Setenv("INTERVIEW_MIN_CONFIDENCE", "0.6")
	t.Setenv("INTERVIEW_SESSION_TTL", "5m")
	o := FromConfig(newConf())
	if o.Engine.MaxQuestions != 2 || o.Engine.FastPath || o.Engine.MinConfidence != 0.6 || o.SessionTTL != 5*time.Minute {
		t.Fatalf("overrides = %+v", o)
	}
}

func TestModule_KeywordFlow(t *testing.T) {
	search := &stubSearch{}
	m := New(modkit.Deps{Cfg: newConf()}, search)
	if m.Name() != "interview" {
		t.Fatalf("name=%q", m.Name())
	}
	conv := module.MustPortsOf[domain.ConversationPort](m)

	ctx := context.Background()
	s, err := conv.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	res, err := conv.Process(ctx, s.ID, "I need a laptop", nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Reply.Kind != domain.ReplyQuestion || res.Reply.Question.Slot != "use_case" {
		t.Fatalf("reply: %+v", res.Reply)
	}
	res, err = conv.Process(ctx, s.ID, "just show me what you have", nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Reply.Kind != domain.ReplyHandoff || res.Reply.Handoff.Reason != domain.ReasonImpatient {
		t.Fatalf("reply: %+v", res.Reply)
	}
	if search.calls != 1 || res.Phase != domain.PhaseComplete {
		t.Fatalf("search calls=%d phase=%s", search.calls, res.Phase)
	}
}
