// Package specificity decides whether a shopper query carries enough signal to search
package specificity

import (
	"slices"
	"strings"

	"shopguide/internal/core/filters"
)

// Policy holds the combination weights and overrides
// the defaults are empirically tuned; change them only through config
type Policy struct {
	BrandType               float64
	BrandColorType          float64
	ColorTypeNoBrand        float64
	TypePrice               float64
	TypeAttribute           float64
	BrandPrice              float64
	BrandColorPrice         float64
	BrandAttribute          float64
	BrandAttributePrice     float64
	TypeBrandAttribute      float64
	TypeBrandAttributePrice float64
	MultiAttribute          float64
	CategoryBonus           float64

	Threshold    float64
	DesktopFloor float64
	MinQueryLen  int
}

// DefaultPolicy returns the documented weights
func DefaultPolicy() Policy {
	return Policy{
		BrandType:               2,
		BrandColorType:          3,
		ColorTypeNoBrand:        1.5,
		TypePrice:               2,
		TypeAttribute:           1.5,
		BrandPrice:              2,
		BrandColorPrice:         2.5,
		BrandAttribute:          2,
		BrandAttributePrice:     3,
		TypeBrandAttribute:      2.5,
		TypeBrandAttributePrice: 4,
		MultiAttribute:          1,
		CategoryBonus:           1,
		Threshold:               2.0,
		DesktopFloor:            2.0,
		MinQueryLen:             3,
	}
}

// Result is a full scoring outcome
type Result struct {
	Specific bool    `json:"is_specific"`
	Score    float64 `json:"score"`
	Signals  Signals `json:"extracted"`
}

// Scorer is stateless and safe for concurrent use
type Scorer struct {
	policy Policy
}

// New returns a Scorer using p
func New(p Policy) *Scorer { return &Scorer{policy: p} }

// Policy returns the weights in use
func (s *Scorer) Policy() Policy { return s.policy }

var std = New(DefaultPolicy())

// Score runs the default scorer
func Score(query string, f *filters.SearchFilters) (bool, Signals) { return std.Score(query, f) }

// Score reports whether query plus prior filters is ready to search
func (s *Scorer) Score(query string, f *filters.SearchFilters) (bool, Signals) {
	r := s.Evaluate(query, f)
	return r.Specific, r.Signals
}

// Evaluate is Score with the numeric score exposed
func (s *Scorer) Evaluate(query string, f *filters.SearchFilters) Result {
	if len([]rune(strings.TrimSpace(query))) < s.policy.MinQueryLen {
		return Result{}
	}
	sig := merge(Extract(query), f)
	score := s.weigh(sig)

	boosted := sig.ProductType == "desktop" && (sig.BrandLike() || sig.Price != nil || len(sig.Attributes) > 0)
	if boosted && score < s.policy.DesktopFloor {
		score = s.policy.DesktopFloor
	}

	specific := score >= s.policy.Threshold
	if slices.Contains(genericTypes, sig.ProductType) && !sig.BrandLike() && sig.Price == nil && len(sig.Attributes) == 0 {
		specific = false
	}
	return Result{Specific: specific, Score: score, Signals: sig}
}

// weigh sums every combination present; a component vendor counts as a brand
func (s *Scorer) weigh(sig Signals) float64 {
	p := s.policy
	b := sig.BrandLike()
	t := sig.ProductType != ""
	c := sig.Color != ""
	pr := sig.Price != nil
	a := len(sig.Attributes) > 0
	k := sig.Category != ""
	tk := t || k

	var score float64
	add := func(cond bool, w float64) {
		if cond {
			score += w
		}
	}
	add(b && t, p.BrandType)
	add(b && c && t, p.BrandColorType)
	add(c && t && !b, p.ColorTypeNoBrand)
	add(t && pr, p.TypePrice)
	add(t && a, p.TypeAttribute)
	add(b && pr && tk, p.BrandPrice)
	add(b && c && pr && tk, p.BrandColorPrice)
	add(b && a && tk, p.BrandAttribute)
	add(b && a && pr && tk, p.BrandAttributePrice)
	add(t && b && a, p.TypeBrandAttribute)
	add(t && b && a && pr, p.TypeBrandAttributePrice)
	add(len(sig.Attributes) >= 2, p.MultiAttribute)
	add(k && (b || c || t || pr || a), p.CategoryBonus)
	return score
}
