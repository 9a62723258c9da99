package iban

import (
	"fmt"
	"sort"

	"github.com/vortex-fintech/go-iban/foundation/geo"
)

// Span is a half-open [Start, End) range of BBAN offsets, i.e. counted from
// the first character after the country code and check digits.
// The zero Span marks an absent segment.
type Span struct {
	Start int
	End   int
}

func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

func (s Span) Len() int { return s.End - s.Start }

// slice returns the segment of a full IBAN covered by s.
func (s Span) slice(iban string) string {
	if s.IsZero() {
		return ""
	}
	return iban[prefixLength+s.Start : prefixLength+s.End]
}

// Layout describes how a country's BBAN splits into its fields.
type Layout struct {
	Country string
	Length  int
	Bank    Span
	Branch  Span
	Account Span
}

// HasBranch reports whether the layout defines a branch segment.
func (l Layout) HasBranch() bool { return !l.Branch.IsZero() }

// Validate checks that every span is ordered and fits inside the BBAN.
func (l Layout) Validate() error {
	if !geo.IsValidISO2(l.Country) {
		return fmt.Errorf("layout %q: invalid country code", l.Country)
	}
	if l.Length < MinLength || l.Length > MaxLength {
		return fmt.Errorf("layout %s: length %d out of range", l.Country, l.Length)
	}
	bban := l.Length - prefixLength
	check := func(name string, s Span, optional bool) error {
		if s.IsZero() {
			if optional {
				return nil
			}
			return fmt.Errorf("layout %s: %s span is required", l.Country, name)
		}
		if s.Start < 0 || s.End <= s.Start || s.End > bban {
			return fmt.Errorf("layout %s: %s span [%d,%d) outside BBAN of %d", l.Country, name, s.Start, s.End, bban)
		}
		return nil
	}
	if err := check("bank", l.Bank, false); err != nil {
		return err
	}
	if err := check("branch", l.Branch, true); err != nil {
		return err
	}
	return check("account", l.Account, false)
}

// registry is fixed at package init and only read afterwards.
// National check digits that sit between or after the fields (FR RIB key,
// ES control digits, BE/PT/NO check digits) are not part of any span.
var registry = map[string]Layout{
	"AT": {Country: "AT", Length: 20, Bank: Span{0, 5}, Account: Span{5, 16}},
	"BE": {Country: "BE", Length: 16, Bank: Span{0, 3}, Account: Span{3, 10}},
	"CH": {Country: "CH", Length: 21, Bank: Span{0, 5}, Account: Span{5, 17}},
	"DE": {Country: "DE", Length: 22, Bank: Span{0, 8}, Account: Span{8, 18}},
	"DK": {Country: "DK", Length: 18, Bank: Span{0, 4}, Account: Span{4, 14}},
	"ES": {Country: "ES", Length: 24, Bank: Span{0, 4}, Branch: Span{4, 8}, Account: Span{10, 20}},
	"FI": {Country: "FI", Length: 18, Bank: Span{0, 3}, Account: Span{3, 14}},
	"FR": {Country: "FR", Length: 27, Bank: Span{0, 5}, Branch: Span{5, 10}, Account: Span{10, 21}},
	"GB": {Country: "GB", Length: 22, Bank: Span{0, 4}, Branch: Span{4, 10}, Account: Span{10, 18}},
	"IE": {Country: "IE", Length: 22, Bank: Span{0, 4}, Branch: Span{4, 10}, Account: Span{10, 18}},
	"IT": {Country: "IT", Length: 27, Bank: Span{1, 6}, Branch: Span{6, 11}, Account: Span{11, 23}},
	"LU": {Country: "LU", Length: 20, Bank: Span{0, 3}, Account: Span{3, 16}},
	"NL": {Country: "NL", Length: 18, Bank: Span{0, 4}, Account: Span{4, 14}},
	"NO": {Country: "NO", Length: 15, Bank: Span{0, 4}, Account: Span{4, 10}},
	"PT": {Country: "PT", Length: 25, Bank: Span{0, 4}, Branch: Span{4, 8}, Account: Span{8, 19}},
	"SE": {Country: "SE", Length: 24, Bank: Span{0, 3}, Account: Span{3, 20}},
}

// LookupLayout returns the registered layout for a country code.
// The code is trimmed and uppercased first; unknown codes report false.
func LookupLayout(country string) (Layout, bool) {
	cc, ok := geo.NormalizeISO2(country)
	if !ok {
		return Layout{}, false
	}
	l, ok := registry[cc]
	return l, ok
}

// Countries lists the registered country codes in ascending order.
func Countries() []string {
	out := make([]string, 0, len(registry))
	for cc := range registry {
		out = append(out, cc)
	}
	sort.Strings(out)
	return out
}
