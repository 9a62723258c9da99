package iban

// CheckStructure applies the structural rules to a normalized IBAN.
//
// Rules run in a fixed order and the first failure wins: empty, too short,
// too long, then format (two letters followed by at least two [0-9A-Z]).
// Length is reported before format on purpose, so "12345678901234" is
// TooShort rather than BadFormat.
func CheckStructure(s string) Reason {
	switch {
	case s == "":
		return ReasonEmpty
	case len(s) < MinLength:
		return ReasonTooShort
	case len(s) > MaxLength:
		return ReasonTooLong
	case !wellFormed(s):
		return ReasonBadFormat
	default:
		return ReasonValid
	}
}

// wellFormed matches ^[A-Z]{2}[0-9A-Z]{2,}$.
func wellFormed(s string) bool {
	if len(s) < 4 || !isUpper(s[0]) || !isUpper(s[1]) {
		return false
	}
	for i := 2; i < len(s); i++ {
		if !isUpper(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
