package service

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"shopguide/internal/core/filters"
	"shopguide/internal/core/normalize"
	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	"shopguide/internal/services/interview/domain"
)

var (
	numberRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	storageRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(tb|gb)\b`)
	bareMoney = regexp.MustCompile(`^\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(k)?$`)
)

// indifferent replies are answers that set nothing
var indifferent = []string{
	"no preference", "any", "anything", "none", "no", "whatever", "skip",
	"dont care", "do not care", "doesnt matter", "does not matter", "not sure", "either",
}

// ToFilters builds the search constraints for a handoff
// slots with a filter key map onto typed fields, other slots and criteria
// outside the schema go to Soft, and
// signals scored from userText fill typed fields the slots left empty
func ToFilters(sch schema.Schema, h domain.Handoff, userText string) filters.SearchFilters {
	f := filters.SearchFilters{Category: sch.Category}

	for _, sl := range sch.Slots {
		val := strings.TrimSpace(h.Filters[sl.Name])
		if val == "" || isIndifferent(val) {
			continue
		}
		applySlot(&f, sch, sl, val)
	}
	for name, val := range h.Filters {
		val = strings.TrimSpace(val)
		if _, ok := sch.Slot(name); ok || val == "" || isIndifferent(val) {
			continue
		}
		soft(&f, name, val)
	}

	fillFromSignals(&f, sch, specificity.Extract(userText))
	return f
}

func applySlot(f *filters.SearchFilters, sch schema.Schema, sl schema.Slot, val string) {
	switch sl.FilterKey {
	case schema.FilterPrice:
		if lo, hi, ok := parseBudget(val); ok {
			f.PriceMinCents, f.PriceMaxCents = lo, hi
			return
		}
	case schema.FilterBrand:
		sig := specificity.Extract(val)
		switch {
		case sig.GPUVendor != "":
			f.GPUVendors = filters.AddUnique(f.GPUVendors, sig.GPUVendor)
		case sig.CPUVendor != "":
			f.CPUVendors = filters.AddUnique(f.CPUVendors, sig.CPUVendor)
		case sig.Brand != "":
			f.Brands = filters.AddUnique(f.Brands, sig.Brand)
		default:
			f.Brands = filters.AddUnique(f.Brands, val)
		}
		return
	case schema.FilterColor:
		if c := specificity.Extract(val).Color; c != "" {
			f.Colors = filters.AddUnique(f.Colors, c)
		} else {
			f.Colors = filters.AddUnique(f.Colors, strings.ToLower(val))
		}
		return
	case schema.FilterProductType:
		if t := specificity.Extract(val).ProductType; t != "" && slices.Contains(sch.ProductTypes, t) {
			f.ProductTypes = filters.AddUnique(f.ProductTypes, t)
			return
		}
	case schema.FilterScreenSize:
		if n, ok := firstNumber(val); ok {
			lo, hi := n-1, n+1
			f.Specs.MinScreenIn, f.Specs.MaxScreenIn = &lo, &hi
			return
		}
	case schema.FilterRAM:
		if n, ok := firstNumber(val); ok {
			f.Specs.MinRAMGB = &n
			return
		}
	case schema.FilterStorage:
		if gb, ok := parseStorage(val); ok {
			f.Specs.MinStorageGB = &gb
			return
		}
	case schema.FilterBattery:
		if n, ok := firstNumber(val); ok {
			f.Specs.MinBatteryHours = &n
			return
		}
	case schema.FilterGenre:
		f.Genre = val
		return
	case schema.FilterFormat:
		f.Format = val
		return
	}
	soft(f, sl.Name, val)
}

// fillFromSignals only touches fields no slot value set
func fillFromSignals(f *filters.SearchFilters, sch schema.Schema, sig specificity.Signals) {
	if len(f.Brands) == 0 && sig.Brand != "" {
		f.Brands = []string{sig.Brand}
	}
	if len(f.GPUVendors) == 0 && sig.GPUVendor != "" {
		f.GPUVendors = []string{sig.GPUVendor}
	}
	if len(f.CPUVendors) == 0 && sig.CPUVendor != "" {
		f.CPUVendors = []string{sig.CPUVendor}
	}
	if len(f.Colors) == 0 && sig.Color != "" {
		f.Colors = []string{sig.Color}
	}
	if len(f.ProductTypes) == 0 && sig.ProductType != "" && slices.Contains(sch.ProductTypes, sig.ProductType) {
		f.ProductTypes = []string{sig.ProductType}
	}
	if !f.HasPriceRange() && sig.Price != nil {
		f.PriceMinCents = centsPtr(sig.Price.Min)
		f.PriceMaxCents = centsPtr(sig.Price.Max)
	}
	if _, ok := f.SoftValue(schema.FilterUseCase); !ok && len(sig.Attributes) > 0 {
		soft(f, schema.FilterUseCase, strings.Join(sig.Attributes, ","))
	}
}

func soft(f *filters.SearchFilters, key, val string) {
	if f.Soft == nil {
		f.Soft = map[string]string{}
	}
	f.Soft[key] = val
}

// parseBudget reads a range phrase, falling back to a bare amount as a ceiling
// values arrive as typed or as catalog quick replies, so fold them first
func parseBudget(val string) (lo, hi *int64, ok bool) {
	if pr, found := specificity.ParsePrice(normalize.Query(val)); found {
		return centsPtr(pr.Min), centsPtr(pr.Max), true
	}
	m := bareMoney.FindStringSubmatch(strings.ToLower(strings.TrimSpace(val)))
	if m == nil {
		return nil, nil, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || n <= 0 {
		return nil, nil, false
	}
	if m[2] != "" {
		n *= 1000
	}
	c := filters.Cents(n)
	return nil, &c, true
}

func parseStorage(val string) (float64, bool) {
	m := storageRe.FindStringSubmatch(strings.ToLower(val))
	if m == nil {
		return firstNumber(val)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "tb" {
		n *= 1024
	}
	return n, true
}

func firstNumber(val string) (float64, bool) {
	m := numberRe.FindString(val)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	return n, err == nil && n > 0
}

func centsPtr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := filters.Cents(*v)
	return &c
}

func isIndifferent(val string) bool {
	v := strings.Join(strings.Fields(strings.ReplaceAll(normalize.Query(val), "'", "")), " ")
	v = strings.TrimRight(v, ".!")
	return slices.Contains(indifferent, v)
}
