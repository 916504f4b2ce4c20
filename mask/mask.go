// Package mask applies country digit masks to raw phone input.
//
// A mask is a template such as "(999) 999-9999": every '9' is one expected
// digit, every other character is a literal separator echoed verbatim.
// Formatting is pure and never fails; bad input degrades to an empty or
// partially filled result.
package mask

import "strings"

const (
	// Placeholder marks one digit position in a mask.
	Placeholder = '9'
	// Blank renders a digit position that has not been typed yet.
	Blank = '_'
)

// zeroOmit lists countries whose national numbers carry a trunk zero that is
// dropped in international format.
var zeroOmit = map[string]bool{
	"PK": true, // Pakistan
	"IN": true, // India
	"BD": true, // Bangladesh
	"NG": true, // Nigeria
}

// Result is the outcome of Format.
type Result struct {
	// Masked is the display string, trimmed after the last typed digit.
	Masked string
	// Digits holds the digits of Masked.
	Digits string
}

// OmitsLeadingZero reports whether one leading zero is dropped for the country.
func OmitsLeadingZero(countryCode string) bool {
	return zeroOmit[countryCode]
}

// Digits returns the decimal digits of s in order.
func Digits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PlaceholderCount returns the number of digit positions in m.
func PlaceholderCount(m string) int {
	return strings.Count(m, string(Placeholder))
}

// Template renders m with every digit position shown as Blank.
func Template(m string) string {
	return strings.ReplaceAll(m, string(Placeholder), string(Blank))
}

// Format applies mask m to the digits found in raw.
//
// Digits beyond the mask's capacity are dropped. Trailing separators and
// blanks after the last placed digit are cut, so "555" against
// "(999) 999-9999" yields "(555". If no digit could be placed the full
// template is returned.
func Format(raw, m, countryCode string) Result {
	digits := Digits(raw)
	if digits == "" {
		return Result{}
	}
	if OmitsLeadingZero(countryCode) && strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}

	pattern := []rune(m)
	out := []rune(Template(m))
	last := -1
	next := 0
	for i, r := range pattern {
		if next >= len(digits) {
			break
		}
		if r != Placeholder {
			continue
		}
		out[i] = rune(digits[next])
		next++
		last = i
	}

	masked := string(out)
	if last >= 0 {
		masked = string(out[:last+1])
	}

	// Digits come from the trimmed display string, literal mask digits included.
	return Result{Masked: masked, Digits: Digits(masked)}
}
