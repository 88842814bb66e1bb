// Package schema is the read-only catalog of per-domain interview slots
package schema

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Priority ranks how early a slot is asked
type Priority int

const (
	// High slots are asked first
	High Priority = iota + 1
	// Medium slots are asked after every high slot is filled or asked
	Medium
	// Low slots are never auto-selected by the interview
	Low
)

// Tiers is the ask order the interview walks
var Tiers = []Priority{High, Medium}

func (p Priority) String() string {
	switch p {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// ParsePriority maps a case insensitive name to a Priority
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return High, nil
	case "medium":
		return Medium, nil
	case "low":
		return Low, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// UnmarshalYAML accepts high, medium or low
func (p *Priority) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText renders the upper case tier name
func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Filter keys a slot may map onto
const (
	FilterUseCase     = "use_case"
	FilterPrice       = "price"
	FilterBrand       = "brand"
	FilterColor       = "color"
	FilterProductType = "product_type"
	FilterScreenSize  = "screen_size"
	FilterRAM         = "ram"
	FilterStorage     = "storage"
	FilterBattery     = "battery"
	FilterGenre       = "genre"
	FilterFormat      = "format"
)

var knownFilterKeys = []string{
	FilterUseCase, FilterPrice, FilterBrand, FilterColor, FilterProductType,
	FilterScreenSize, FilterRAM, FilterStorage, FilterBattery, FilterGenre, FilterFormat,
}

// Slot is one piece of information the interview can ask for
type Slot struct {
	Name            string   `yaml:"name" json:"name"`
	DisplayName     string   `yaml:"display_name" json:"display_name"`
	Priority        Priority `yaml:"priority" json:"priority"`
	Description     string   `yaml:"description" json:"description"`
	ExampleQuestion string   `yaml:"example_question" json:"example_question"`
	ExampleReplies  []string `yaml:"example_replies" json:"example_replies"`
	FilterKey       string   `yaml:"filter_key,omitempty" json:"filter_key,omitempty"`
}

// Schema is the ordered slot list for one domain
type Schema struct {
	Domain      string   `yaml:"domain" json:"domain"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Keywords    []string `yaml:"keywords" json:"keywords,omitempty"`

	// ProductTypes are the catalog product_type values a query may pin
	ProductTypes []string `yaml:"product_types" json:"product_types,omitempty"`
	Slots        []Slot   `yaml:"slots" json:"slots"`
}

// ByPriority returns the slots of one tier in schema order
func (s Schema) ByPriority(p Priority) []Slot {
	var out []Slot
	for _, sl := range s.Slots {
		if sl.Priority == p {
			out = append(out, sl)
		}
	}
	return out
}

// Slot finds a slot by name
func (s Schema) Slot(name string) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.Name == name {
			return sl, true
		}
	}
	return Slot{}, false
}

// Descriptions returns slot name to description for the extractor
func (s Schema) Descriptions() map[string]string {
	out := make(map[string]string, len(s.Slots))
	for _, sl := range s.Slots {
		out[sl.Name] = sl.Description
	}
	return out
}

func (s Schema) clone() Schema {
	out := s
	out.Keywords = slices.Clone(s.Keywords)
	out.ProductTypes = slices.Clone(s.ProductTypes)
	out.Slots = make([]Slot, len(s.Slots))
	for i, sl := range s.Slots {
		sl.ExampleReplies = slices.Clone(sl.ExampleReplies)
		out.Slots[i] = sl
	}
	return out
}

func (s Schema) validate() error {
	if strings.TrimSpace(s.Domain) == "" {
		return fmt.Errorf("schema: empty domain")
	}
	if len(s.Slots) == 0 {
		return fmt.Errorf("schema %s: no slots", s.Domain)
	}
	seen := make(map[string]struct{}, len(s.Slots))
	for i, sl := range s.Slots {
		if strings.TrimSpace(sl.Name) == "" {
			return fmt.Errorf("schema %s: slot %d has no name", s.Domain, i)
		}
		if _, dup := seen[sl.Name]; dup {
			return fmt.Errorf("schema %s: duplicate slot %q", s.Domain, sl.Name)
		}
		seen[sl.Name] = struct{}{}
		if sl.Priority < High || sl.Priority > Low {
			return fmt.Errorf("schema %s: slot %q has no priority", s.Domain, sl.Name)
		}
		if sl.ExampleQuestion == "" {
			return fmt.Errorf("schema %s: slot %q has no example question", s.Domain, sl.Name)
		}
		if sl.FilterKey != "" && !slices.Contains(knownFilterKeys, sl.FilterKey) {
			return fmt.Errorf("schema %s: slot %q has unknown filter key %q", s.Domain, sl.Name, sl.FilterKey)
		}
	}
	return nil
}
