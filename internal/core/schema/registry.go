package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed schemas.yaml
var embedded []byte

// Registry is an immutable domain to schema table
type Registry struct {
	byDomain map[string]Schema
	order    []string
}

type catalog struct {
	Domains []Schema `yaml:"domains"`
}

// New builds a registry from schemas, rejecting invalid or duplicate domains
func New(schemas ...Schema) (*Registry, error) {
	r := &Registry{byDomain: make(map[string]Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.validate(); err != nil {
			return nil, err
		}
		key := normDomain(s.Domain)
		if _, dup := r.byDomain[key]; dup {
			return nil, fmt.Errorf("schema: duplicate domain %q", s.Domain)
		}
		s.Domain = key
		r.byDomain[key] = s.clone()
		r.order = append(r.order, key)
	}
	return r, nil
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Registry, error) {
	var c catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("schema: decode catalog: %w", err)
	}
	if len(c.Domains) == 0 {
		return nil, fmt.Errorf("schema: catalog has no domains")
	}
	return New(c.Domains...)
}

// Default returns the built-in catalog
func Default() (*Registry, error) { return Parse(embedded) }

// Load reads the catalog at path, or the built-in one when path is empty
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(b)
}

// MustDefault panics when the built-in catalog is invalid
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the schema for a domain
// callers surface a miss as an unknown schema, never a default
func (r *Registry) Lookup(domain string) (Schema, bool) {
	if r == nil {
		return Schema{}, false
	}
	s, ok := r.byDomain[normDomain(domain)]
	if !ok {
		return Schema{}, false
	}
	return s.clone(), true
}

// Domains lists registered domain ids in catalog order
func (r *Registry) Domains() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns every schema in catalog order
func (r *Registry) All() []Schema {
	if r == nil {
		return nil
	}
	out := make([]Schema, 0, len(r.order))
	for _, d := range r.order {
		out = append(out, r.byDomain[d].clone())
	}
	return out
}

func normDomain(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
