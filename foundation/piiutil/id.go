package piiutil

import "strings"

// MaskIDLast4 masks identifiers such as national account numbers while
// preserving separators. It keeps the last digit when there are at most four
// digits and the last four otherwise; without digits it keeps only the last
// letter.
//
//	"0532-0130-00" -> "****-**30-00"
//	"AB-1234-CD"   -> "AB-***4-CD"
//	"ABCD"         -> "***D"
func MaskIDLast4(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	runes := []rune(s)
	if !maskDigitsKeepLast4Or1(runes) {
		return maskLettersAndDigitsKeepLast(runes, 1)
	}
	return string(runes)
}
