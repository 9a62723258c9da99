package iban_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

var canonical = []string{
	"DE89370400440532013000",
	"FR1420041010050500013M02606",
	"GB29NWBK60161331926819",
}

func TestValidate_CanonicalExamples(t *testing.T) {
	t.Parallel()

	for _, s := range canonical {
		res := iban.Validate(s)
		require.True(t, res.Valid, s)
		require.Equal(t, iban.ReasonValid, res.Reason, s)
		require.Equal(t, s, res.IBAN)
		require.NoError(t, res.Err())
	}
}

func TestValidate_NormalizesBeforeChecking(t *testing.T) {
	t.Parallel()

	res := iban.Validate("  de89 3704-0044.0532 0130 00\n")
	require.True(t, res.Valid)
	require.Equal(t, "DE89370400440532013000", res.IBAN)
	require.True(t, iban.IsValid("gb29 nwbk 6016 1331 9268 19"))
}

func TestValidate_Reasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want iban.Reason
	}{
		{name: "empty", in: "", want: iban.ReasonEmpty},
		{name: "only separators", in: " -./ ", want: iban.ReasonEmpty},
		{name: "unicode noise only", in: "€ü—✓", want: iban.ReasonEmpty},
		{name: "garbage sentence", in: "not an iban!!", want: iban.ReasonTooShort},
		{name: "fourteen chars", in: "DE893704004405", want: iban.ReasonTooShort},
		{name: "thirty five chars", in: "DE" + strings.Repeat("1", 33), want: iban.ReasonTooLong},
		{name: "digits only", in: "1234567890123456", want: iban.ReasonBadFormat},
		{name: "digit in country", in: "D189370400440532013000", want: iban.ReasonBadFormat},
		{name: "wrong check digits", in: "DE88370400440532013000", want: iban.ReasonChecksumFailed},
		{name: "valid", in: "DE89370400440532013000", want: iban.ReasonValid},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := iban.Validate(tc.in)
			assert.Equal(t, tc.want, res.Reason)
			assert.Equal(t, tc.want == iban.ReasonValid, res.Valid)
		})
	}
}

// Length is reported before the leading-letters rule.
func TestValidate_LengthReportedBeforeLeadingLetters(t *testing.T) {
	t.Parallel()

	require.Equal(t, iban.ReasonTooShort, iban.Validate("1234567890123").Reason)
	require.Equal(t, iban.ReasonTooLong, iban.Validate(strings.Repeat("9", 40)).Reason)
	require.Equal(t, iban.ReasonBadFormat, iban.Validate(strings.Repeat("9", 20)).Reason)
}

func TestValidate_LengthBoundary(t *testing.T) {
	t.Parallel()

	require.Equal(t, iban.ReasonTooShort, iban.Validate(strings.Repeat("A", 14)).Reason)
	require.Equal(t, iban.ReasonTooLong, iban.Validate(strings.Repeat("A", 35)).Reason)

	for n := iban.MinLength; n <= iban.MaxLength; n++ {
		for _, s := range []string{strings.Repeat("A", n), strings.Repeat("7", n), "GB" + strings.Repeat("0", n-2)} {
			r := iban.Validate(s).Reason
			assert.NotEqual(t, iban.ReasonTooShort, r, "len %d", n)
			assert.NotEqual(t, iban.ReasonTooLong, r, "len %d", n)
			assert.Contains(t, []iban.Reason{iban.ReasonBadFormat, iban.ReasonChecksumFailed, iban.ReasonValid}, r)
		}
	}
}

func TestValidate_DetectsSingleCharacterSubstitutions(t *testing.T) {
	t.Parallel()

	const digits = "0123456789"
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	for _, s := range canonical {
		for i := 0; i < len(s); i++ {
			pool := digits
			if s[i] >= 'A' && s[i] <= 'Z' {
				pool = letters
			}
			for j := 0; j < len(pool); j++ {
				if pool[j] == s[i] {
					continue
				}
				mutated := s[:i] + string(pool[j]) + s[i+1:]
				res := iban.Validate(mutated)
				require.False(t, res.Valid, "mutation %q of %q not detected", mutated, s)
				require.Contains(t, []iban.Reason{iban.ReasonChecksumFailed, iban.ReasonBadFormat}, res.Reason)
			}
		}
	}
}

func TestValidate_DigitInCountryIsBadFormat(t *testing.T) {
	t.Parallel()

	for _, s := range canonical {
		for i := 0; i < 2; i++ {
			mutated := s[:i] + "7" + s[i+1:]
			require.Equal(t, iban.ReasonBadFormat, iban.Validate(mutated).Reason, mutated)
		}
	}
}

func TestValidate_DetectsAdjacentDigitTranspositions(t *testing.T) {
	t.Parallel()

	for _, s := range canonical {
		for i := 4; i+1 < len(s); i++ {
			a, b := s[i], s[i+1]
			if a == b || a < '0' || a > '9' || b < '0' || b > '9' {
				continue
			}
			swapped := s[:i] + string(b) + string(a) + s[i+2:]
			require.False(t, iban.IsValid(swapped), "transposition %q of %q not detected", swapped, s)
		}
	}
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	err := iban.Validate("DE88370400440532013000").Err()
	require.ErrorIs(t, err, iban.ErrInvalid)

	var ve iban.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, iban.ReasonChecksumFailed, ve.Reason)
	require.Equal(t, "DE", ve.Country)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "de89 3704", want: "DE893704"},
		{in: "  fr14-2004_1010\t", want: "FR1420041010"},
		{in: "ÄÖÜ gb29 ✓", want: "GB29"},
		{in: "ＤＥ89", want: "89"},
		{in: "ALREADY0K", want: "ALREADY0K"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, iban.Normalize(tc.in), tc.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "x", "de89 3704 0044 0532 0130 00", "ÄÖÜ-ß", "\x00\xff\xfeAB12", "not an iban!!", "ＤＥ89"}
	for _, in := range inputs {
		once := iban.Normalize(in)
		require.Equal(t, once, iban.Normalize(once), in)
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	for _, s := range append([]string{"", "not an iban!!", "de89 3704 0044 0532 0130 00"}, canonical...) {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := iban.Normalize(in)
		if twice := iban.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
		for i := 0; i < len(once); i++ {
			c := once[i]
			if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
				t.Fatalf("Normalize(%q) kept byte %q", in, c)
			}
		}

		res := iban.Validate(in)
		acc := iban.Decompose(in)
		if res.Valid != (acc.Status != iban.StatusInvalid) {
			t.Fatalf("Validate and Decompose disagree for %q: %+v vs %+v", in, res, acc)
		}
	})
}

func TestCountryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "d", want: ""},
		{in: "  d ", want: ""},
		{in: "de", want: "DE"},
		{in: "  gb29 nwbk", want: "GB"},
		{in: "12AB", want: "12"},
		{in: "not an iban!!", want: "NO"},
		{in: "äb", want: "ÄB"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, iban.CountryOf(tc.in), tc.in)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "DE89 3704 0044 0532 0130 00", iban.Format("de89370400440532013000"))
	require.Equal(t, "GB29 NWBK 6016 1331 9268 19", iban.Format("GB29 NWBK 6016 1331 9268 19"))
	require.Equal(t, "DE89", iban.Format("de89"))
	require.Equal(t, "DE89 3", iban.Format("DE893"))
	require.Equal(t, "", iban.Format("  "))
}
