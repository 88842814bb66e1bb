// Package filters defines the hard and soft constraints a product search runs with
package filters

import (
	"maps"
	"slices"
	"strings"
)

// Specs holds optional numeric sub-filters over product spec fields
// nil means the predicate is absent
type Specs struct {
	MinRAMGB        *float64 `json:"min_ram_gb,omitempty"`
	MinStorageGB    *float64 `json:"min_storage_gb,omitempty"`
	MinScreenIn     *float64 `json:"min_screen_in,omitempty"`
	MaxScreenIn     *float64 `json:"max_screen_in,omitempty"`
	MinBatteryHours *float64 `json:"min_battery_hours,omitempty"`
}

// Empty reports whether no spec predicate is set
func (s Specs) Empty() bool {
	return s.MinRAMGB == nil && s.MinStorageGB == nil &&
		s.MinScreenIn == nil && s.MaxScreenIn == nil && s.MinBatteryHours == nil
}

// SearchFilters is the constraint set for one search call
// Soft carries preferences that are never applied as predicates
type SearchFilters struct {
	Category      string            `json:"category,omitempty"`
	ProductTypes  []string          `json:"product_types,omitempty"`
	Brands        []string          `json:"brands,omitempty"`
	GPUVendors    []string          `json:"gpu_vendors,omitempty"`
	CPUVendors    []string          `json:"cpu_vendors,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	PriceMinCents *int64            `json:"price_min_cents,omitempty"`
	PriceMaxCents *int64            `json:"price_max_cents,omitempty"`
	Specs         Specs             `json:"specs,omitzero"`
	Genre         string            `json:"genre,omitempty"`
	Format        string            `json:"format,omitempty"`
	Soft          map[string]string `json:"soft,omitempty"`
}

// Clone returns a deep copy so derived filter sets never alias the original
func (f SearchFilters) Clone() SearchFilters {
	out := f
	out.ProductTypes = slices.Clone(f.ProductTypes)
	out.Brands = slices.Clone(f.Brands)
	out.GPUVendors = slices.Clone(f.GPUVendors)
	out.CPUVendors = slices.Clone(f.CPUVendors)
	out.Colors = slices.Clone(f.Colors)
	out.PriceMinCents = clonePtr(f.PriceMinCents)
	out.PriceMaxCents = clonePtr(f.PriceMaxCents)
	out.Specs = Specs{
		MinRAMGB:        clonePtr(f.Specs.MinRAMGB),
		MinStorageGB:    clonePtr(f.Specs.MinStorageGB),
		MinScreenIn:     clonePtr(f.Specs.MinScreenIn),
		MaxScreenIn:     clonePtr(f.Specs.MaxScreenIn),
		MinBatteryHours: clonePtr(f.Specs.MinBatteryHours),
	}
	if f.Soft != nil {
		out.Soft = maps.Clone(f.Soft)
	}
	return out
}

// HasPriceRange reports whether a floor or ceiling is set
func (f SearchFilters) HasPriceRange() bool {
	return f.PriceMinCents != nil || f.PriceMaxCents != nil
}

// SoftValue returns a soft preference by key
func (f SearchFilters) SoftValue(key string) (string, bool) {
	if f.Soft == nil {
		return "", false
	}
	v, ok := f.Soft[key]
	return v, ok && strings.TrimSpace(v) != ""
}

// AddUnique appends v to set when not already present (case insensitive)
func AddUnique(set []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return set
	}
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return set
		}
	}
	return append(set, v)
}

// Cents converts a whole currency amount to cents
func Cents(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
