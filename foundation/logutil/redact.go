// Package logutil keeps account identifiers out of logs.
package logutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vortex-fintech/go-iban/foundation/piiutil"
)

const defaultReplacement = "[REDACTED]"

// Keys whose values are masked rather than dropped, so operators can still
// correlate entries by country and the last characters.
var maskedTokens = map[string]struct{}{
	"iban": {},
}

var redactedTokens = map[string]struct{}{
	"password": {},
	"secret":   {},
	"token":    {},
	"pan":      {},
	"account":  {},
	"bban":     {},
	"routing":  {},
	"swift":    {},
}

// RedactKV returns a copy of a zap-style key/value list where values under
// sensitive keys are hidden: IBAN keys ("iban", "payee_iban", "ibanRaw") are
// masked with piiutil.MaskIBAN, other sensitive keys are replaced.
// Keys are matched by token, so "AccountNumber" and "bank_account" both hit
// "account". A trailing key without a value is kept as is.
func RedactKV(kv ...any) []any {
	out := make([]any, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		switch classify(key) {
		case classMask:
			out[i+1] = piiutil.MaskIBAN(fmt.Sprint(out[i+1]))
		case classRedact:
			out[i+1] = defaultReplacement
		}
	}
	return out
}

// SanitizeValidationErrors returns a copy of a field -> message map with the
// messages of sensitive fields replaced. In "development" and "debug" the map
// is copied unchanged.
func SanitizeValidationErrors(fields map[string]string, env, replacement string) map[string]string {
	if fields == nil {
		return nil
	}
	out := make(map[string]string, len(fields))

	e := strings.ToLower(strings.TrimSpace(env))
	if e == "development" || e == "debug" {
		for k, v := range fields {
			out[k] = v
		}
		return out
	}

	if replacement == "" {
		replacement = defaultReplacement
	}
	for k, v := range fields {
		if classify(k) != classPlain {
			out[k] = replacement
			continue
		}
		out[k] = v
	}
	return out
}

type class uint8

const (
	classPlain class = iota
	classMask
	classRedact
)

func classify(key string) class {
	result := classPlain
	for _, tok := range tokenizeKey(key) {
		if _, ok := maskedTokens[tok]; ok {
			return classMask
		}
		if _, ok := redactedTokens[tok]; ok {
			result = classRedact
		}
	}
	return result
}

// tokenizeKey splits snake, kebab, dotted and camel case keys into
// lowercase tokens: "payeeIBAN.raw" -> [payee iban raw].
func tokenizeKey(s string) []string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	var prevLowerOrDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && prevLowerOrDigit {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLowerOrDigit = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			b.WriteByte(' ')
			prevLowerOrDigit = false
		}
	}
	return strings.Fields(b.String())
}
