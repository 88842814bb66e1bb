package llm

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"shopguide/internal/core/schema"
	"shopguide/internal/platform/testkit"
	"shopguide/internal/services/interview/domain"
)

// fakeChat answers every Generate with a canned reply and records the input
type fakeChat struct {
	reply *einoschema.Message
	err   error
	in    []*einoschema.Message
	opts  int
}

func (f *fakeChat) Generate(_ context.Context, in []*einoschema.Message, opts ...model.Option) (*einoschema.Message, error) {
	f.in, f.opts = in, len(opts)
	return f.reply, f.err
}

func (f *fakeChat) Stream(context.Context, []*einoschema.Message, ...model.Option) (*einoschema.StreamReader[*einoschema.Message], error) {
	return nil, errors.New("not streaming")
}

func toolReply(name, args string) *einoschema.Message {
	return &einoschema.Message{
		Role: einoschema.Assistant,
		ToolCalls: []einoschema.ToolCall{{
			Function: einoschema.FunctionCall{Name: name, Arguments: args},
		}},
	}
}

func TestClassifier_ToolCall(t *testing.T) {
	cm := &fakeChat{reply: toolReply(classifyTool, `{"domain":" Books ","confidence":1.4}`)}
	got, err := NewClassifier(cm).Classify(context.Background(), "a mystery novel", schema.MustDefault().All())
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Domain != "books" || got.Confidence != 1 {
		t.Fatalf("got %+v", got)
	}
	if len(cm.in) != 2 || cm.in[0].Role != einoschema.System || cm.in[1].Content != "a mystery novel" {
		t.Fatalf("messages: %+v", cm.in)
	}
	testkit.MustContain(t, cm.in[0].Content, "- electronics:")
	if cm.opts != 2 {
		t.Fatalf("want tools and tool choice options, got %d", cm.opts)
	}
}

func TestClassifier_ContentFallback(t *testing.T) {
	cm := &fakeChat{reply: &einoschema.Message{Content: "```json\n{\"domain\":\"home\",\"confidence\":0.7}\n```"}}
	got, err := NewClassifier(cm).Classify(context.Background(), "a sofa", schema.MustDefault().All())
	if err != nil || got.Domain != "home" || got.Confidence != 0.7 {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestClassifier_Failures(t *testing.T) {
	tests := []struct {
		name string
		cm   *fakeChat
		want error
	}{
		{"model error", &fakeChat{err: errors.New("rate limited")}, nil},
		{"nil reply", &fakeChat{}, ErrNoDecision},
		{"no decision", &fakeChat{reply: &einoschema.Message{Content: "I think books"}}, ErrNoDecision},
		{"bad json", &fakeChat{reply: toolReply(classifyTool, `{"domain":`)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(tt.cm).Classify(context.Background(), "x", nil)
			if err == nil {
				t.Fatalf("want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := NewClassifier(nil).Classify(context.Background(), "x", nil); err == nil {
		t.Fatalf("nil model should fail")
	}
}

func TestExtractor_FiltersUnknownSlots(t *testing.T) {
	args := `{"criteria":[{"slot":"brand","value":"Dell"},{"slot":"wings","value":"2"},{"slot":"color","value":" "}],` +
		`"reasoning":"brand named","is_impatient":true}`
	cm := &fakeChat{reply: toolReply(extractTool, args)}
	desc := map[string]string{"brand": "Preferred brand", "color": "Preferred color"}

	got, err := NewExtractor(cm).Extract(context.Background(), "a Dell please, quickly", desc)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got.Criteria) != 1 || got.Criteria[0] != (domain.Criterion{Slot: "brand", Value: "Dell"}) {
		t.Fatalf("criteria: %+v", got.Criteria)
	}
	if !got.IsImpatient || got.WantsRecommendations || got.Reasoning != "brand named" {
		t.Fatalf("flags: %+v", got)
	}
	testkit.MustContain(t, cm.in[0].Content, "- brand: Preferred brand")
}

func TestGenerator(t *testing.T) {
	cm := &fakeChat{reply: toolReply(questionTool, `{"question":"  Which brand do you like? ","quick_replies":["Apple","Dell"]}`)}
	sch, _ := schema.MustDefault().Lookup("electronics")
	brand, _ := sch.Slot("brand")
	screen, _ := sch.Slot("screen_size")

	got, err := NewGenerator(cm).Generate(context.Background(), domain.GenerateRequest{
		Domain:       "electronics",
		Slot:         brand,
		Known:        map[string]string{"use_case": "gaming"},
		InviteTopics: []schema.Slot{screen},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Question != "Which brand do you like?" || got.Topic != "brand" || !slices.Equal(got.QuickReplies, []string{"Apple", "Dell"}) {
		t.Fatalf("got %+v", got)
	}
	testkit.MustContain(t, cm.in[0].Content, "screen_size")
	testkit.MustContain(t, cm.in[1].Content, "- use_case: gaming")
}

func TestJSONBody(t *testing.T) {
	tests := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{`sure: {"a":{"b":2}} done`, `{"a":{"b":2}}`},
		{"no json here", ""},
	}
	for _, tt := range tests {
		if got := jsonBody(tt.in); got != tt.want {
			t.Fatalf("jsonBody(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
}
