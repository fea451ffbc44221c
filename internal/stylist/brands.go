package stylist

import (
	"regexp"
	"sort"
)

// brandTable maps lowercase brand tokens to their canonical display form.
// Correction rewrites casing in place and never drops surrounding tokens.
var brandTable = map[string]string{
	"maison margiela": "Maison Margiela",
	"nike":            "Nike",
	"adidas":          "Adidas",
	"puma":            "Puma",
	"reebok":          "Reebok",
	"converse":        "Converse",
	"vans":            "Vans",
	"levis":           "Levi's",
	"calvin klein":    "Calvin Klein",
	"tommy hilfiger":  "Tommy Hilfiger",
	"ralph lauren":    "Ralph Lauren",
	"gucci":           "Gucci",
	"prada":           "Prada",
	"balenciaga":      "Balenciaga",
	"yeezy":           "Yeezy",
	"off white":       "Off-White",
	"supreme":         "Supreme",
}

type brandPattern struct {
	re        *regexp.Regexp
	canonical string
}

var brandPatterns = compileBrandPatterns()

// Longer phrases first so "maison margiela" is matched as a whole
// before any shorter token could split it.
func compileBrandPatterns() []brandPattern {
	keys := make([]string, 0, len(brandTable))
	for k := range brandTable {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	patterns := make([]brandPattern, 0, len(keys))
	for _, k := range keys {
		patterns = append(patterns, brandPattern{
			re:        regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			canonical: brandTable[k],
		})
	}
	return patterns
}

// CorrectBrands rewrites known brand tokens in s to their canonical casing.
// Matching is case-insensitive on word boundaries; the operation is idempotent.
func CorrectBrands(s string) string {
	for _, p := range brandPatterns {
		s = p.re.ReplaceAllString(s, p.canonical)
	}
	return s
}
