package iban

import "strings"

const (
	MinLength = 15
	MaxLength = 34

	prefixLength = 4
)

// Normalize drops every byte outside [A-Za-z0-9] and uppercases the rest.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
		}
	}
	return b.String()
}

// CountryOf returns the first two characters of the trimmed, uppercased
// input without validating them. It is meant for cosmetic use on partial
// input, such as picking a flag while the user is still typing.
func CountryOf(raw string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(r) < 2 {
		return ""
	}
	return string(r[:2])
}

// Format renders raw in print format: normalized, in blocks of four.
func Format(raw string) string {
	s := Normalize(raw)
	if len(s) <= 4 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
