package service

import (
	"slices"
	"strings"

	"shopguide/internal/core/schema"
)

// tiers is the ask order; LOW slots are only ever invited, never asked
var tiers = []schema.Priority{schema.High, schema.Medium, schema.Low}

// NextMissingSlot returns the first HIGH then MEDIUM slot in schema order that is
// neither filled nor already asked
func NextMissingSlot(s schema.Schema, filled map[string]string, asked []string) (schema.Slot, bool) {
	for _, p := range schema.Tiers {
		for _, sl := range s.ByPriority(p) {
			if missing(sl.Name, filled, asked) {
				return sl, true
			}
		}
	}
	return schema.Slot{}, false
}

// InviteTopics lists the other missing slots at the chosen slot's tier, or the
// missing slots of the next lower tier that has any
func InviteTopics(s schema.Schema, chosen schema.Slot, filled map[string]string, asked []string) []schema.Slot {
	start := -1
	for i, p := range tiers {
		if p == chosen.Priority {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	for _, p := range tiers[start:] {
		var out []schema.Slot
		for _, sl := range s.ByPriority(p) {
			if sl.Name != chosen.Name && missing(sl.Name, filled, asked) {
				out = append(out, sl)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func missing(name string, filled map[string]string, asked []string) bool {
	if strings.TrimSpace(filled[name]) != "" {
		return false
	}
	return !slices.Contains(asked, name)
}

// inviteSuffix renders the compound question tail for topics
func inviteSuffix(topics []schema.Slot) string {
	if len(topics) == 0 {
		return ""
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		n := t.DisplayName
		if n == "" {
			n = strings.ReplaceAll(t.Name, "_", " ")
		}
		names[i] = strings.ToLower(n)
	}
	list := names[0]
	if len(names) > 1 {
		list = strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
	return " Feel free to also mention any " + list + " preference."
}
