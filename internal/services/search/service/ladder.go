package service

import (
	"slices"
	"strings"

	"shopguide/internal/core/filters"
	"shopguide/internal/services/search/domain"
)

// maxSteps bounds the relaxation ladder
const maxSteps = 5

// rung is the predicate base for one ladder step before sampling fills
// in price bands, order and limit
type rung struct {
	step int
	pred domain.Predicate
}

// priceBounds are the effective price predicates after the quality floor
type priceBounds struct {
	floor  *int64 // explicit or synthesized floor, dropped at step 3
	sanity *int64 // category floor, kept through step 4
	ceil   *int64
}

// qualityFloor applies the ceiling-only floor and the category floor
func (s *Service) qualityFloor(f filters.SearchFilters) priceBounds {
	b := priceBounds{floor: f.PriceMinCents, ceil: f.PriceMaxCents}
	if b.floor != nil && b.ceil != nil && *b.floor > *b.ceil {
		b.floor, b.ceil = b.ceil, b.floor
	}
	if b.floor == nil && b.ceil != nil && s.cfg.FloorRatio > 0 {
		v := int64(float64(*b.ceil) * s.cfg.FloorRatio)
		b.floor = &v
	}
	if !f.HasPriceRange() {
		return b
	}
	cat, ok := s.cfg.CategoryFloors[strings.ToLower(strings.TrimSpace(f.Category))]
	if !ok || cat <= 0 || (b.ceil != nil && cat >= *b.ceil) {
		return b
	}
	b.sanity = &cat
	if b.floor == nil || *b.floor < cat {
		b.floor = &cat
	}
	return b
}

// ladder builds the five steps; each candidate space contains the previous one
// and category plus product types never change
func (s *Service) ladder(f filters.SearchFilters, exclude []string) []rung {
	b := s.qualityFloor(f)

	full := domain.Predicate{
		Category:      f.Category,
		ProductTypes:  slices.Clone(f.ProductTypes),
		Brands:        slices.Clone(f.Brands),
		GPUVendors:    slices.Clone(f.GPUVendors),
		CPUVendors:    slices.Clone(f.CPUVendors),
		Colors:        slices.Clone(f.Colors),
		Genre:         f.Genre,
		Format:        f.Format,
		PriceMinCents: b.floor,
		PriceMaxCents: b.ceil,
		Specs:         f.Specs,
		ExcludeIDs:    exclude,
	}

	noSpecs := full.WithoutSpecs()

	noFloor := noSpecs
	noFloor.PriceMinCents = b.sanity

	noBrand := noFloor
	noBrand.Brands = nil
	noBrand.GPUVendors = nil
	noBrand.CPUVendors = nil

	bare := domain.Predicate{
		Category:     f.Category,
		ProductTypes: slices.Clone(f.ProductTypes),
		ExcludeIDs:   exclude,
	}

	return []rung{
		{1, full},
		{2, noSpecs},
		{3, noFloor},
		{4, noBrand},
		{5, bare},
	}
}
