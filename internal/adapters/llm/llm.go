// Package llm implements the interview capabilities over an eino chat model,
// plus keyword and template fallbacks used when no model is configured
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrNoDecision is returned when the model answered without the forced tool call
// and without a parsable JSON body
var ErrNoDecision = errors.New("llm: no tool decision in model reply")

// callTool sends sys and user with tool forced and decodes the tool arguments into out
func callTool(ctx context.Context, cm model.BaseChatModel, sys, user string, tool *schema.ToolInfo, out any) error {
	if cm == nil {
		return errors.New("llm: chat model is required")
	}
	msg, err := cm.Generate(ctx,
		[]*schema.Message{schema.SystemMessage(sys), schema.UserMessage(user)},
		model.WithTools([]*schema.ToolInfo{tool}),
		model.WithToolChoice(schema.ToolChoiceForced),
	)
	if err != nil {
		return fmt.Errorf("llm: %s: %w", tool.Name, err)
	}
	if msg == nil {
		return ErrNoDecision
	}
	payload := toolArguments(msg, tool.Name)
	if payload == "" {
		payload = jsonBody(msg.Content)
	}
	if payload == "" {
		return ErrNoDecision
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("llm: decode %s: %w", tool.Name, err)
	}
	return nil
}

func toolArguments(msg *schema.Message, name string) string {
	for _, call := range msg.ToolCalls {
		if strings.EqualFold(call.Function.Name, name) {
			return strings.TrimSpace(call.Function.Arguments)
		}
	}
	return ""
}

// jsonBody strips a markdown fence and returns the outermost object, if any
func jsonBody(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
