package specificity

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceRange bounds are whole currency units
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Empty reports whether neither bound is set
func (p PriceRange) Empty() bool { return p.Min == nil && p.Max == nil }

const amount = `(\$)?\s?(\d[\d,]*(?:\.\d+)?)\s?(k\b)?(?:\s?(?:dollars|usd|bucks))?(\s?(?:gb|tb|mb|inch|inches|hours|hrs|hz|mah|kg|lbs|mp|w)\b)?`

var (
	maxPriceRe   = regexp.MustCompile(`\b(?:under|less than|below|up to|no more than|at most|max|maximum|cheaper than|within)\s+` + amount)
	minPriceRe   = regexp.MustCompile(`\b(?:over|above|more than|at least|starting at|min|minimum)\s+` + amount)
	rangePriceRe = regexp.MustCompile(`\$(\d[\d,]*(?:\.\d+)?)\s?(k)?\s?(?:-|–|to)\s?\$?(\d[\d,]*(?:\.\d+)?)\s?(k)?`)
	betweenRe    = regexp.MustCompile(`\bbetween\s+\$?(\d[\d,]*(?:\.\d+)?)\s?(k)?\s+and\s+\$?(\d[\d,]*(?:\.\d+)?)\s?(k)?`)
)

// ParsePrice finds every price phrase in folded text and merges them into
// the tightest range; inverted bounds are swapped
func ParsePrice(text string) (PriceRange, bool) {
	var mins, maxs []float64

	for _, m := range maxPriceRe.FindAllStringSubmatch(text, -1) {
		if v, ok := boundValue(m); ok {
			maxs = append(maxs, v)
		}
	}
	for _, m := range minPriceRe.FindAllStringSubmatch(text, -1) {
		if v, ok := boundValue(m); ok {
			mins = append(mins, v)
		}
	}
	for _, re := range []*regexp.Regexp{rangePriceRe, betweenRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			lo, ok1 := parseNumber(m[1], m[2])
			hi, ok2 := parseNumber(m[3], m[4])
			if !ok1 || !ok2 {
				continue
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			mins = append(mins, lo)
			maxs = append(maxs, hi)
		}
	}

	var pr PriceRange
	for _, v := range mins {
		if pr.Min == nil || v > *pr.Min {
			pr.Min = ptr(v)
		}
	}
	for _, v := range maxs {
		if pr.Max == nil || v < *pr.Max {
			pr.Max = ptr(v)
		}
	}
	if pr.Min != nil && pr.Max != nil && *pr.Min > *pr.Max {
		pr.Min, pr.Max = pr.Max, pr.Min
	}
	return pr, !pr.Empty()
}

// boundValue rejects quantities like "over 16gb" unless a currency sign is present
func boundValue(m []string) (float64, bool) {
	dollar, num, k, unit := m[1], m[2], m[3], m[4]
	if dollar == "" && strings.TrimSpace(unit) != "" {
		return 0, false
	}
	return parseNumber(num, k)
}

func parseNumber(num, k string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if k != "" {
		v *= 1000
	}
	return v, true
}

func ptr[T any](v T) *T { return &v }
