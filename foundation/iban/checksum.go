package iban

import "fmt"

// VerifyChecksum reports whether s passes ISO 7064 MOD 97-10.
// It expects a structurally valid, normalized IBAN and returns false for
// anything it cannot reduce.
func VerifyChecksum(s string) bool {
	if len(s) < prefixLength {
		return false
	}
	rem, ok := mod97(s[prefixLength:], s[:prefixLength])
	return ok && rem == 1
}

// Mod97 returns the remainder of the rearranged, letter-expanded IBAN
// modulo 97. ok is false when s holds a byte outside [0-9A-Z] or is shorter
// than the country and check-digit prefix.
func Mod97(s string) (rem int, ok bool) {
	if len(s) < prefixLength {
		return 0, false
	}
	return mod97(s[prefixLength:], s[:prefixLength])
}

// mod97 reduces the concatenation of parts digit by digit. Letters expand to
// two digits (A=10 ... Z=35). The carry never exceeds 96*100+99, so int is
// always wide enough regardless of input length.
func mod97(parts ...string) (int, bool) {
	rem := 0
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			c := p[i]
			switch {
			case isDigit(c):
				rem = (rem*10 + int(c-'0')) % 97
			case isUpper(c):
				v := int(c-'A') + 10
				rem = (rem*100 + v) % 97
			default:
				return 0, false
			}
		}
	}
	return rem, true
}

// CheckDigits computes the two check digits for country and bban.
func CheckDigits(country, bban string) (string, error) {
	cc, b, err := assembleParts(country, bban)
	if err != nil {
		return "", err
	}
	rem, ok := mod97(b, cc, "00")
	if !ok {
		return "", ValidationError{Reason: ReasonBadFormat, Country: cc}
	}
	return fmt.Sprintf("%02d", 98-rem), nil
}

// Assemble builds a checksum-valid IBAN from a country code and a BBAN.
// The result is checked against the structural rules, so a BBAN that is too
// short or too long for any IBAN is rejected.
func Assemble(country, bban string) (string, error) {
	cd, err := CheckDigits(country, bban)
	if err != nil {
		return "", err
	}
	cc, b, _ := assembleParts(country, bban)
	out := cc + cd + b
	if r := CheckStructure(out); r != ReasonValid {
		return "", ValidationError{Reason: r, Country: cc}
	}
	return out, nil
}

func assembleParts(country, bban string) (string, string, error) {
	cc := Normalize(country)
	if len(cc) != 2 || !isUpper(cc[0]) || !isUpper(cc[1]) {
		return "", "", ValidationError{Reason: ReasonBadFormat}
	}
	b := Normalize(bban)
	if b == "" {
		return "", "", ValidationError{Reason: ReasonEmpty, Country: cc}
	}
	return cc, b, nil
}
