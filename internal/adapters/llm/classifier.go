package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"shopguide/internal/core/schema"
	"shopguide/internal/services/interview/domain"
)

const classifyTool = "submit_domain"

// Classifier maps a message to a shopping domain with a chat model
type Classifier struct {
	cm model.BaseChatModel
}

var _ domain.Classifier = (*Classifier)(nil)

// NewClassifier wraps cm
func NewClassifier(cm model.BaseChatModel) *Classifier { return &Classifier{cm: cm} }

// Classify asks the model to pick one of domains or "unknown"
func (c *Classifier) Classify(ctx context.Context, text string, domains []schema.Schema) (domain.Classification, error) {
	ids := make([]string, 0, len(domains)+1)
	var b strings.Builder
	b.WriteString("You route shoppers to a product domain. Pick the single domain the message is about, ")
	b.WriteString("or \"unknown\" when none fits. Report your confidence between 0 and 1.\nDomains:\n")
	for _, d := range domains {
		ids = append(ids, d.Domain)
		fmt.Fprintf(&b, "- %s: %s\n", d.Domain, d.Description)
	}
	ids = append(ids, "unknown")

	tool := &einoschema.ToolInfo{
		Name: classifyTool,
		Desc: "Submit the shopping domain of the message",
		ParamsOneOf: einoschema.NewParamsOneOfByParams(map[string]*einoschema.ParameterInfo{
			"domain": {
				Type:     einoschema.String,
				Desc:     "Domain id",
				Enum:     ids,
				Required: true,
			},
			"confidence": {
				Type:     einoschema.Number,
				Desc:     "Confidence between 0 and 1",
				Required: true,
			},
		}),
	}

	var out domain.Classification
	if err := callTool(ctx, c.cm, b.String(), text, tool, &out); err != nil {
		return domain.Classification{}, err
	}
	out.Domain = strings.ToLower(strings.TrimSpace(out.Domain))
	out.Confidence = min(max(out.Confidence, 0), 1)
	return out, nil
}
