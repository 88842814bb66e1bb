// Package domain defines the search relaxation types and ports
package domain

import (
	"time"

	"shopguide/internal/core/filters"
)

// Product is one catalog row as returned to shoppers
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	ProductType string         `json:"product_type,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	GPUVendor   string         `json:"gpu_vendor,omitempty"`
	CPUVendor   string         `json:"cpu_vendor,omitempty"`
	Color       string         `json:"color,omitempty"`
	PriceCents  int64          `json:"price_cents"`
	Genre       string         `json:"genre,omitempty"`
	Format      string         `json:"format,omitempty"`
	Specs       map[string]any `json:"specs,omitempty"`
}

// Order is the row ordering a predicate asks for
type Order int

const (
	// OrderStable orders by id so pools are reproducible before shuffling
	OrderStable Order = iota
	// OrderPriceAsc orders by price then id
	OrderPriceAsc
)

// Predicate is the query shape handed to the product store
// zero valued fields are absent predicates
type Predicate struct {
	Category     string
	ProductTypes []string
	Brands       []string
	GPUVendors   []string
	CPUVendors   []string
	Colors       []string
	Genre        string
	Format       string

	PriceMinCents *int64
	PriceMaxCents *int64
	// MaxExclusive makes the ceiling a strict bound, used by every band but the last
	MaxExclusive bool

	Specs      filters.Specs
	ExcludeIDs []string

	Order Order
	Limit int
}

// HasSpecs reports whether spec sub-filter predicates are present
func (p Predicate) HasSpecs() bool { return !p.Specs.Empty() }

// WithoutSpecs returns p with spec predicates stripped
func (p Predicate) WithoutSpecs() Predicate {
	p.Specs = filters.Specs{}
	return p
}

// Request is one search call
type Request struct {
	Filters    filters.SearchFilters `json:"filters"`
	Limit      int                   `json:"limit"`
	ExcludeIDs []string              `json:"exclude_ids,omitempty"`
}

// Outcome is the result of a search
// NoResults is a normal outcome when even the bare category step is empty
type Outcome struct {
	Products  []Product `json:"products"`
	Step      int       `json:"step"`
	Sampled   bool      `json:"sampled"`
	NoResults bool      `json:"no_results"`
}

// Event is the telemetry record written per search
type Event struct {
	At          time.Time
	Category    string
	ProductType string
	Step        int
	Sampled     bool
	Results     int
	Limit       int
	HadPrice    bool
	Degraded    bool
	ElapsedMS   int64
}

// Spec keys inside a product's specs document
const (
	SpecRAMGB        = "ram_gb"
	SpecStorageGB    = "storage_gb"
	SpecScreenIn     = "screen_in"
	SpecBatteryHours = "battery_hours"
)
