package country

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Resolve returns the record for code, or the FallbackCode record when code
// is unknown. Matching is exact and case-sensitive.
func (c *Catalog) Resolve(code string) Record {
	if r, ok := c.Lookup(code); ok {
		return r
	}
	// Present by construction, see New.
	r, _ := c.Lookup(FallbackCode)
	return r
}

// Filter returns, in catalog order, every record whose name in lang contains
// term ignoring case, or whose dial code contains term literally. An empty
// term returns the whole catalog. For a lang without a name field only dial
// codes can match.
func (c *Catalog) Filter(term, lang string) []Record {
	if term == "" {
		return c.Records()
	}

	folded := fold(term)
	out := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		if name, ok := r.Name(lang); ok && strings.Contains(fold(name), folded) {
			out = append(out, r)
			continue
		}
		if strings.Contains(r.DialCode, term) {
			out = append(out, r)
		}
	}
	return out
}

// fold prepares s for caseless comparison. cases.Caser is stateful, so a
// fresh one is made per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
