package specificity

import "testing"

func TestParsePrice(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	cases := []struct {
		in       string
		min, max *float64
	}{
		{"under $2000", nil, f(2000)},
		{"less than 800 dollars", nil, f(800)},
		{"below $1,500", nil, f(1500)},
		{"over $500", f(500), nil},
		{"above 300", f(300), nil},
		{"$500-$1000", f(500), f(1000)},
		{"$1k to $2k", f(1000), f(2000)},
		{"between 200 and 400", f(200), f(400)},
		{"under 2k", nil, f(2000)},
		{"over $500 but under $1200", f(500), f(1200)},
		{"under $1000 and below $800", nil, f(800)},
		{"under $300 over $900", f(300), f(900)},
	}
	for _, tc := range cases {
		pr, ok := ParsePrice(tc.in)
		if !ok {
			t.Fatalf("%q: no price found", tc.in)
		}
		if !eq(pr.Min, tc.min) || !eq(pr.Max, tc.max) {
			t.Fatalf("%q: got min=%v max=%v", tc.in, val(pr.Min), val(pr.Max))
		}
	}
}

func TestParsePrice_IgnoresQuantities(t *testing.T) {
	for _, in := range []string{"over 16gb ram", "at least 8 hours battery", "under 15 inches", "under 2kg", "laptop"} {
		if pr, ok := ParsePrice(in); ok {
			t.Fatalf("%q: unexpected price %v/%v", in, val(pr.Min), val(pr.Max))
		}
	}
}

func eq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func val(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
