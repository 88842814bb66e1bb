package llm

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"shopguide/internal/services/interview/domain"
)

const questionTool = "submit_question"

// Generator phrases the next interview question with a chat model
type Generator struct {
	cm model.BaseChatModel
}

var _ domain.Generator = (*Generator)(nil)

// NewGenerator wraps cm
func NewGenerator(cm model.BaseChatModel) *Generator { return &Generator{cm: cm} }

// Generate asks for one short question about req.Slot that also invites the
// invite topics
func (g *Generator) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Generated, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly %s shopping assistant. Ask exactly one short question about %q (%s). ",
		req.Domain, req.Slot.Name, req.Slot.Description)
	if len(req.InviteTopics) > 0 {
		names := make([]string, len(req.InviteTopics))
		for i, t := range req.InviteTopics {
			names[i] = t.Name
		}
		fmt.Fprintf(&b, "In the same sentence invite them to also mention %s. ", strings.Join(names, ", "))
	}
	b.WriteString("Offer 3 to 5 quick reply options. Never ask about something already known.")

	var user strings.Builder
	user.WriteString("Known so far:\n")
	for _, k := range slices.Sorted(maps.Keys(req.Known)) {
		fmt.Fprintf(&user, "- %s: %s\n", k, req.Known[k])
	}
	if len(req.Known) == 0 {
		user.WriteString("- nothing yet\n")
	}
	if req.Slot.ExampleQuestion != "" {
		fmt.Fprintf(&user, "Example phrasing: %s\n", req.Slot.ExampleQuestion)
	}

	tool := &einoschema.ToolInfo{
		Name: questionTool,
		Desc: "Submit the question to show the shopper",
		ParamsOneOf: einoschema.NewParamsOneOfByParams(map[string]*einoschema.ParameterInfo{
			"question": {Type: einoschema.String, Required: true},
			"quick_replies": {
				Type:     einoschema.Array,
				ElemInfo: &einoschema.ParameterInfo{Type: einoschema.String},
			},
			"topic": {Type: einoschema.String, Desc: "Slot the question is about"},
		}),
	}

	var out domain.Generated
	if err := callTool(ctx, g.cm, b.String(), user.String(), tool, &out); err != nil {
		return domain.Generated{}, err
	}
	out.Question = strings.TrimSpace(out.Question)
	if out.Topic == "" {
		out.Topic = req.Slot.Name
	}
	return out, nil
}
