package repo

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"shopguide/internal/services/search/domain"
)

// Memory is an in process product store with the same predicate semantics
// as the Postgres store, used when no database is configured
type Memory struct {
	mu   sync.RWMutex
	rows []domain.Product
}

var _ domain.StorePort = (*Memory)(nil)

// NewMemory returns a store holding products
func NewMemory(products ...domain.Product) *Memory {
	return &Memory{rows: slices.Clone(products)}
}

// LoadMemory reads a JSON array of products from path
func LoadMemory(path string) (*Memory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var ps []domain.Product
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return NewMemory(ps...), nil
}

// Add appends products
func (m *Memory) Add(ps ...domain.Product) {
	m.mu.Lock()
	m.rows = append(m.rows, ps...)
	m.mu.Unlock()
}

// Len returns the number of products held
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// Query implements domain.StorePort
func (m *Memory) Query(ctx context.Context, p domain.Predicate) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	var hits []domain.Product
	for _, r := range m.rows {
		if matches(r, p) {
			hits = append(hits, r)
		}
	}
	m.mu.RUnlock()

	switch p.Order {
	case domain.OrderPriceAsc:
		slices.SortFunc(hits, func(a, b domain.Product) int {
			return cmp.Or(cmp.Compare(a.PriceCents, b.PriceCents), cmp.Compare(a.ID, b.ID))
		})
	default:
		slices.SortFunc(hits, func(a, b domain.Product) int { return cmp.Compare(a.ID, b.ID) })
	}
	if p.Limit > 0 && len(hits) > p.Limit {
		hits = hits[:p.Limit]
	}

	out := make([]map[string]any, len(hits))
	for i, h := range hits {
		out[i] = toRow(h)
	}
	return out, nil
}

func matches(r domain.Product, p domain.Predicate) bool {
	if p.Category != "" && !strings.EqualFold(r.Category, p.Category) {
		return false
	}
	if !in(r.ProductType, p.ProductTypes) || !in(r.Brand, p.Brands) ||
		!in(r.GPUVendor, p.GPUVendors) || !in(r.CPUVendor, p.CPUVendors) || !in(r.Color, p.Colors) {
		return false
	}
	if p.Genre != "" && !strings.EqualFold(r.Genre, p.Genre) {
		return false
	}
	if p.Format != "" && !strings.EqualFold(r.Format, p.Format) {
		return false
	}
	if p.PriceMinCents != nil && r.PriceCents < *p.PriceMinCents {
		return false
	}
	if p.PriceMaxCents != nil {
		if p.MaxExclusive && r.PriceCents >= *p.PriceMaxCents {
			return false
		}
		if !p.MaxExclusive && r.PriceCents > *p.PriceMaxCents {
			return false
		}
	}
	if !specAtLeast(r, domain.SpecRAMGB, p.Specs.MinRAMGB) ||
		!specAtLeast(r, domain.SpecStorageGB, p.Specs.MinStorageGB) ||
		!specAtLeast(r, domain.SpecScreenIn, p.Specs.MinScreenIn) ||
		!specAtLeast(r, domain.SpecBatteryHours, p.Specs.MinBatteryHours) {
		return false
	}
	if p.Specs.MaxScreenIn != nil {
		v, ok := domain.Number(r.Specs[domain.SpecScreenIn])
		if !ok || v > *p.Specs.MaxScreenIn {
			return false
		}
	}
	return !slices.Contains(p.ExcludeIDs, r.ID)
}

// specAtLeast treats a missing spec like SQL NULL: the predicate fails
func specAtLeast(r domain.Product, key string, floor *float64) bool {
	if floor == nil {
		return true
	}
	v, ok := domain.Number(r.Specs[key])
	return ok && v >= *floor
}

func in(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func toRow(p domain.Product) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"category":     p.Category,
		"product_type": p.ProductType,
		"brand":        p.Brand,
		"gpu_vendor":   p.GPUVendor,
		"cpu_vendor":   p.CPUVendor,
		"color":        p.Color,
		"price_cents":  p.PriceCents,
		"genre":        p.Genre,
		"format":       p.Format,
		"specs":        p.Specs,
	}
}
