// Package geo holds helpers for ISO 3166-1 alpha-2 country codes as they
// appear at the start of an IBAN.
package geo

import "strings"

// regionalIndicatorA is U+1F1E6, the regional indicator symbol for 'A'.
const regionalIndicatorA = 0x1F1E6

// NormalizeISO2 trims and uppercases a two-letter ASCII code.
//
// The check is format-only: "ZZ" passes even though it is not an assigned
// ISO 3166-1 value. Whether a country uses IBANs is up to the caller.
func NormalizeISO2(code string) (string, bool) {
	c := strings.TrimSpace(code)
	if len(c) != 2 {
		return "", false
	}

	var out [2]byte
	for i := 0; i < 2; i++ {
		b := c[i]
		switch {
		case b >= 'A' && b <= 'Z':
			out[i] = b
		case b >= 'a' && b <= 'z':
			out[i] = b - ('a' - 'A')
		default:
			return "", false
		}
	}
	return string(out[:]), true
}

// IsValidISO2 reports whether code normalizes as a two-letter code.
func IsValidISO2(code string) bool {
	_, ok := NormalizeISO2(code)
	return ok
}

// FlagEmoji renders a two-letter code as its regional-indicator pair,
// e.g. "de" -> "🇩🇪". Codes that do not normalize return "".
func FlagEmoji(code string) string {
	c, ok := NormalizeISO2(code)
	if !ok {
		return ""
	}
	return string([]rune{
		rune(regionalIndicatorA + int(c[0]-'A')),
		rune(regionalIndicatorA + int(c[1]-'A')),
	})
}
