package specificity

import (
	"slices"
	"strings"
	"unicode"

	"shopguide/internal/core/filters"
	"shopguide/internal/core/normalize"
)

// Signals is what one query says about the product it wants
// a component vendor token lands in GPUVendor or CPUVendor and never in Brand
type Signals struct {
	Brand       string      `json:"brand,omitempty"`
	GPUVendor   string      `json:"gpu_vendor,omitempty"`
	CPUVendor   string      `json:"cpu_vendor,omitempty"`
	Color       string      `json:"color,omitempty"`
	ProductType string      `json:"product_type,omitempty"`
	Category    string      `json:"category,omitempty"`
	Attributes  []string    `json:"attributes,omitempty"`
	Price       *PriceRange `json:"price_range,omitempty"`
}

// BrandLike reports a device brand or a component vendor
func (s Signals) BrandLike() bool {
	return s.Brand != "" || s.GPUVendor != "" || s.CPUVendor != ""
}

// HasAttribute reports whether tag was extracted
func (s Signals) HasAttribute(tag string) bool { return slices.Contains(s.Attributes, tag) }

// Extract pulls signals out of a raw query without consulting prior filters
func Extract(query string) Signals {
	text := normalize.Query(query)
	toks := tokenize(text)

	var sig Signals
	if e, ok := firstMatch(toks, brandDict); ok {
		sig.Brand = e.value
	}
	extractVendors(toks, &sig)

	if e, ok := firstMatch(toks, multiColors); ok {
		sig.Color = e.value
	} else if e, ok := firstMatch(toks, singleColors); ok {
		sig.Color = e.value
	}

	if e, ok := firstMatch(toks, compoundTypes); ok {
		sig.ProductType = e.value
	} else if e, ok := firstMatch(toks, singleTypes); ok {
		sig.ProductType = e.value
	}

	sig.Attributes = matchAttributes(toks)

	if pr, ok := ParsePrice(text); ok {
		sig.Price = &pr
	}
	return sig
}

// merge fills signals the query did not match from filters accumulated earlier
func merge(sig Signals, f *filters.SearchFilters) Signals {
	if f == nil {
		return sig
	}
	if sig.Brand == "" && len(f.Brands) > 0 {
		sig.Brand = f.Brands[0]
	}
	if sig.GPUVendor == "" && len(f.GPUVendors) > 0 {
		sig.GPUVendor = f.GPUVendors[0]
	}
	if sig.CPUVendor == "" && len(f.CPUVendors) > 0 {
		sig.CPUVendor = f.CPUVendors[0]
	}
	if sig.Category == "" {
		sig.Category = strings.TrimSpace(f.Category)
	}
	if len(sig.Attributes) == 0 {
		if uc, ok := f.SoftValue("use_case"); ok {
			tags := matchAttributes(tokenize(normalize.Query(uc)))
			if len(tags) == 0 {
				tags = []string{normalize.Query(uc)}
			}
			sig.Attributes = tags
		}
	}
	return sig
}

func extractVendors(toks []string, sig *Signals) {
	graphics := false
	for _, w := range graphicsContext {
		if slices.Contains(toks, w) {
			graphics = true
			break
		}
	}
	for _, v := range matchAll(toks, vendorDict) {
		kind := v.kind
		if kind == vendorEither {
			kind = vendorCPU
			if graphics {
				kind = vendorGPU
			}
		}
		switch kind {
		case vendorGPU:
			if sig.GPUVendor == "" {
				sig.GPUVendor = v.value
			}
		case vendorCPU:
			if sig.CPUVendor == "" {
				sig.CPUVendor = v.value
			}
		}
	}
}

func matchAttributes(toks []string) []string {
	var out []string
	for _, e := range attributeDict {
		if indexOf(toks, e.phrase) >= 0 && !slices.Contains(out, e.value) {
			out = append(out, e.value)
		}
	}
	slices.Sort(out)
	return out
}

// firstMatch returns the entry matching earliest in toks, longest phrase on ties
func firstMatch(toks []string, dict []entry) (entry, bool) {
	best, bestPos := entry{}, -1
	for _, e := range dict {
		pos := indexOf(toks, e.phrase)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(e.phrase) > len(best.phrase)) {
			best, bestPos = e, pos
		}
	}
	return best, bestPos >= 0
}

// matchAll returns vendor entries in query order, skipping tokens a longer phrase already claimed
func matchAll(toks []string, dict []vendorEntry) []vendorEntry {
	type hit struct {
		v   vendorEntry
		pos int
	}
	var hits []hit
	claimed := make([]bool, len(toks))
	for _, v := range dict {
		pos := indexOf(toks, v.phrase)
		if pos < 0 || claimed[pos] {
			continue
		}
		for i := pos; i < pos+len(v.phrase); i++ {
			claimed[i] = true
		}
		hits = append(hits, hit{v, pos})
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return a.pos - b.pos })
	out := make([]vendorEntry, len(hits))
	for i, h := range hits {
		out[i] = h.v
	}
	return out
}

// indexOf finds phrase as a contiguous token run, which gives word boundary matching
func indexOf(toks, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(toks) {
		return -1
	}
outer:
	for i := 0; i+len(phrase) <= len(toks); i++ {
		for j, p := range phrase {
			if toks[i+j] != p {
				continue outer
			}
		}
		return i
	}
	return -1
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
