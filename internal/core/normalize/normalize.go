// Package normalize folds shopper text into the form the scorer and
// keyword classifier match against
//
// Pipeline
// 1 drop invalid UTF-8 and control runes
// 2 NFKD so accents split into combining marks
// 3 remove combining and format marks
// 4 NFC and Unicode case folding
// 5 fullwidth to ASCII
// 6 collapse whitespace runs to one space and trim
//
// Digits and currency symbols pass through untouched so price phrases survive
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFC,
			cases.Fold(),
			width.Fold,
		)
	},
}

// Query returns the folded form of s
func Query(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}
	return collapseSpaces(out)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
