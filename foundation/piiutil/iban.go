package piiutil

import (
	"strings"

	"github.com/vortex-fintech/go-iban/foundation/iban"
)

const (
	ibanVisiblePrefix = 4
	ibanVisibleSuffix = 4
)

// MaskIBAN hides the middle of an IBAN for logs and receipts. Country code,
// check digits and the last four characters stay visible:
//
//	"GB82 WEST 1234 5698 7654 32" -> "GB82**************5432"
//
// Input is normalized first. Values too short to keep both ends fall back to
// MaskIDLast4.
func MaskIBAN(raw string) string {
	s := iban.Normalize(raw)
	if len(s) <= ibanVisiblePrefix+ibanVisibleSuffix {
		return MaskIDLast4(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:ibanVisiblePrefix])
	b.WriteString(strings.Repeat("*", len(s)-ibanVisiblePrefix-ibanVisibleSuffix))
	b.WriteString(s[len(s)-ibanVisibleSuffix:])
	return b.String()
}
