package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"shopguide/internal/core/normalize"
	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	"shopguide/internal/services/interview/domain"
)

// Keyword classifies by counting registry keywords in the message
type Keyword struct{}

var _ domain.Classifier = Keyword{}

// Classify picks the domain with the most keyword hits; ties keep catalog order
func (Keyword) Classify(_ context.Context, text string, domains []schema.Schema) (domain.Classification, error) {
	padded := words(text)
	best, hits := "", 0
	for _, d := range domains {
		n := 0
		for _, kw := range d.Keywords {
			if strings.Contains(padded, words(kw)) {
				n++
			}
		}
		if n > hits {
			best, hits = d.Domain, n
		}
	}
	if hits == 0 {
		return domain.Classification{Domain: "unknown"}, nil
	}
	return domain.Classification{Domain: best, Confidence: float64(hits) / float64(hits+1)}, nil
}

var (
	impatientPhrases = []string{
		"just show me", "show me what you have", "show me something", "skip", "whatever",
		"dont care", "don't care", "hurry", "enough questions", "stop asking",
	}
	recommendPhrases = []string{
		"recommend", "suggest", "what do you think", "you pick", "your pick", "best option", "surprise me",
	}
	screenRe  = regexp.MustCompile(`(\d{1,2}(?:\.\d)?)\s*(?:"|in\b|inch|inches)`)
	ramRe     = regexp.MustCompile(`(\d{1,3})\s*gb\s*(?:of\s+)?(?:ram|memory)`)
	storageRe = regexp.MustCompile(`(\d{1,4})\s*(gb|tb)\s*(?:of\s+)?(?:storage|ssd|hdd|disk)`)
)

// KeywordExtractor reads slot values with the specificity dictionaries and the
// example replies of the registry
type KeywordExtractor struct {
	reg *schema.Registry
}

var _ domain.Extractor = (*KeywordExtractor)(nil)

// NewKeywordExtractor matches example replies from reg
func NewKeywordExtractor(reg *schema.Registry) *KeywordExtractor { return &KeywordExtractor{reg: reg} }

// Extract never fails; unmatched slots are simply absent
func (k *KeywordExtractor) Extract(_ context.Context, text string, slotDescriptions map[string]string) (domain.Extraction, error) {
	folded := normalize.Query(text)
	sig := specificity.Extract(text)

	var out domain.Extraction
	for name := range slotDescriptions {
		if v := k.slotValue(name, folded, sig); v != "" {
			out.Criteria = append(out.Criteria, domain.Criterion{Slot: name, Value: v})
		}
	}
	out.IsImpatient = containsAny(folded, impatientPhrases)
	out.WantsRecommendations = containsAny(folded, recommendPhrases)
	return out, nil
}

func (k *KeywordExtractor) slotValue(name, folded string, sig specificity.Signals) string {
	switch name {
	case "budget":
		if sig.Price != nil {
			return priceText(sig.Price)
		}
	case "brand":
		switch {
		case sig.Brand != "":
			return sig.Brand
		case sig.GPUVendor != "":
			return sig.GPUVendor
		case sig.CPUVendor != "":
			return sig.CPUVendor
		}
	case "color":
		if sig.Color != "" {
			return sig.Color
		}
	case "use_case":
		if len(sig.Attributes) > 0 {
			return strings.Join(sig.Attributes, ",")
		}
	case "screen_size":
		if m := screenRe.FindStringSubmatch(folded); m != nil {
			return m[1] + " inch"
		}
	case "ram":
		if m := ramRe.FindStringSubmatch(folded); m != nil {
			return m[1] + "GB"
		}
	case "storage":
		if m := storageRe.FindStringSubmatch(folded); m != nil {
			return m[1] + strings.ToUpper(m[2])
		}
	case "product_type":
		if sig.ProductType != "" {
			return sig.ProductType
		}
	}
	return k.exampleReply(name, folded)
}

// exampleReply returns the first example reply of a same named slot that the
// text mentions
func (k *KeywordExtractor) exampleReply(name, folded string) string {
	padded := words(folded)
	for _, s := range k.reg.All() {
		sl, ok := s.Slot(name)
		if !ok {
			continue
		}
		for _, r := range sl.ExampleReplies {
			f := words(r)
			if strings.TrimSpace(f) == "" || f == " no preference " {
				continue
			}
			if strings.Contains(padded, f) {
				return r
			}
		}
	}
	return ""
}

func priceText(p *specificity.PriceRange) string {
	switch {
	case p.Min != nil && p.Max != nil:
		return "$" + trimFloat(*p.Min) + "-$" + trimFloat(*p.Max)
	case p.Max != nil:
		return "under $" + trimFloat(*p.Max)
	case p.Min != nil:
		return "over $" + trimFloat(*p.Min)
	}
	return ""
}

func trimFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// words folds s to space separated letter and digit runs, padded with spaces
func words(s string) string {
	f := strings.FieldsFunc(normalize.Query(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(f, " ") + " "
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// Template phrases questions from the slot's example question
type Template struct{}

var _ domain.Generator = Template{}

// Generate returns the example question with a short invite for the other topics
func (Template) Generate(_ context.Context, req domain.GenerateRequest) (domain.Generated, error) {
	q := strings.TrimSpace(req.Slot.ExampleQuestion)
	if q == "" {
		return domain.Generated{}, nil
	}
	if len(req.InviteTopics) > 0 {
		names := make([]string, len(req.InviteTopics))
		for i, t := range req.InviteTopics {
			n := t.DisplayName
			if n == "" {
				n = strings.ReplaceAll(t.Name, "_", " ")
			}
			names[i] = strings.ToLower(n)
		}
		list := names[0]
		if len(names) > 1 {
			list = strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
		}
		q += " You can also tell me about " + list + "."
	}
	return domain.Generated{Question: q, QuickReplies: req.Slot.ExampleReplies, Topic: req.Slot.Name}, nil
}
