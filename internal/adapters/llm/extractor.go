package llm

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"shopguide/internal/services/interview/domain"
)

const extractTool = "submit_criteria"

// Extractor reads slot values and intent flags with a chat model
type Extractor struct {
	cm model.BaseChatModel
}

var _ domain.Extractor = (*Extractor)(nil)

// NewExtractor wraps cm
func NewExtractor(cm model.BaseChatModel) *Extractor { return &Extractor{cm: cm} }

// Extract returns only criteria naming one of the described slots
func (e *Extractor) Extract(ctx context.Context, text string, slotDescriptions map[string]string) (domain.Extraction, error) {
	slots := make([]string, 0, len(slotDescriptions))
	for name := range slotDescriptions {
		slots = append(slots, name)
	}
	slices.Sort(slots)

	var b strings.Builder
	b.WriteString("You read a shopper's message and pull out the preferences it states. ")
	b.WriteString("Only fill slots the message actually answers, keep values short and in the shopper's words. ")
	b.WriteString("Flag is_impatient when the shopper wants results now, and wants_recommendations when they ask you to pick.\nSlots:\n")
	for _, name := range slots {
		fmt.Fprintf(&b, "- %s: %s\n", name, slotDescriptions[name])
	}

	tool := &einoschema.ToolInfo{
		Name: extractTool,
		Desc: "Submit the slot values found in the message",
		ParamsOneOf: einoschema.NewParamsOneOfByParams(map[string]*einoschema.ParameterInfo{
			"criteria": {
				Type: einoschema.Array,
				Desc: "Slot values stated in the message",
				ElemInfo: &einoschema.ParameterInfo{
					Type: einoschema.Object,
					SubParams: map[string]*einoschema.ParameterInfo{
						"slot":  {Type: einoschema.String, Enum: slots, Required: true},
						"value": {Type: einoschema.String, Required: true},
					},
				},
			},
			"reasoning":             {Type: einoschema.String, Desc: "One sentence on what was found"},
			"is_impatient":          {Type: einoschema.Boolean},
			"wants_recommendations": {Type: einoschema.Boolean},
		}),
	}

	var out domain.Extraction
	if err := callTool(ctx, e.cm, b.String(), text, tool, &out); err != nil {
		return domain.Extraction{}, err
	}
	out.Criteria = slices.DeleteFunc(out.Criteria, func(c domain.Criterion) bool {
		_, ok := slotDescriptions[c.Slot]
		return !ok || strings.TrimSpace(c.Value) == ""
	})
	return out, nil
}
