package piiutil

import "unicode"

const (
	shortDigitCountThreshold = 4
	keepShortDigits          = 1
	keepLongDigits           = 4
)

func isSignificant(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// maskDigitsKeepLast4Or1 masks digits in place, keeping the last digit when
// there are at most four of them and the last four otherwise. It reports
// false when there are no digits at all.
func maskDigitsKeepLast4Or1(runes []rune) bool {
	total := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			total++
		}
	}
	if total == 0 {
		return false
	}

	keep := keepLongDigits
	if total <= shortDigitCountThreshold {
		keep = keepShortDigits
	}
	maskFromRight(runes, keep, unicode.IsDigit)
	return true
}

// maskLettersAndDigitsKeepLast masks letters and digits except the last keep.
func maskLettersAndDigitsKeepLast(runes []rune, keep int) string {
	if keep < 1 {
		keep = 1
	}
	maskFromRight(runes, keep, isSignificant)
	return string(runes)
}

// maskFromRight replaces every rune matching pred with '*', except the
// rightmost keep matches. Separators are left untouched.
func maskFromRight(runes []rune, keep int, pred func(rune) bool) {
	seen := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if !pred(runes[i]) {
			continue
		}
		seen++
		if seen > keep {
			runes[i] = '*'
		}
	}
}
