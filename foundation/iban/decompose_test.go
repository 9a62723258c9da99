package iban_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

func TestDecompose_KnownLayouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want iban.Account
	}{
		{
			in:   "DE89370400440532013000",
			want: iban.Account{Country: "DE", BankCode: "37040044", AccountNumber: "0532013000", Status: iban.StatusComplete},
		},
		{
			in:   "FR1420041010050500013M02606",
			want: iban.Account{Country: "FR", BankCode: "20041", BranchCode: "01005", AccountNumber: "0500013M026", Status: iban.StatusComplete},
		},
		{
			in:   "GB29NWBK60161331926819",
			want: iban.Account{Country: "GB", BankCode: "NWBK", BranchCode: "601613", AccountNumber: "31926819", Status: iban.StatusComplete},
		},
		{
			in:   "gb29 nwbk 6016 1331 9268 19",
			want: iban.Account{Country: "GB", BankCode: "NWBK", BranchCode: "601613", AccountNumber: "31926819", Status: iban.StatusComplete},
		},
		{
			in:   "AT611904300234573201",
			want: iban.Account{Country: "AT", BankCode: "19043", AccountNumber: "00234573201", Status: iban.StatusComplete},
		},
		{
			in:   "BE68539007547034",
			want: iban.Account{Country: "BE", BankCode: "539", AccountNumber: "0075470", Status: iban.StatusComplete},
		},
		{
			in:   "CH9300762011623852957",
			want: iban.Account{Country: "CH", BankCode: "00762", AccountNumber: "011623852957", Status: iban.StatusComplete},
		},
		{
			in:   "DK5000400440116243",
			want: iban.Account{Country: "DK", BankCode: "0040", AccountNumber: "0440116243", Status: iban.StatusComplete},
		},
		{
			in:   "ES9121000418450200051332",
			want: iban.Account{Country: "ES", BankCode: "2100", BranchCode: "0418", AccountNumber: "0200051332", Status: iban.StatusComplete},
		},
		{
			in:   "FI2112345600000785",
			want: iban.Account{Country: "FI", BankCode: "123", AccountNumber: "45600000785", Status: iban.StatusComplete},
		},
		{
			in:   "IE29AIBK93115212345678",
			want: iban.Account{Country: "IE", BankCode: "AIBK", BranchCode: "931152", AccountNumber: "12345678", Status: iban.StatusComplete},
		},
		{
			in:   "IT60X0542811101000000123456",
			want: iban.Account{Country: "IT", BankCode: "05428", BranchCode: "11101", AccountNumber: "000000123456", Status: iban.StatusComplete},
		},
		{
			in:   "LU280019400644750000",
			want: iban.Account{Country: "LU", BankCode: "001", AccountNumber: "9400644750000", Status: iban.StatusComplete},
		},
		{
			in:   "NL91ABNA0417164300",
			want: iban.Account{Country: "NL", BankCode: "ABNA", AccountNumber: "0417164300", Status: iban.StatusComplete},
		},
		{
			in:   "NO9386011117947",
			want: iban.Account{Country: "NO", BankCode: "8601", AccountNumber: "111794", Status: iban.StatusComplete},
		},
		{
			in:   "PT50000201231234567890154",
			want: iban.Account{Country: "PT", BankCode: "0002", BranchCode: "0123", AccountNumber: "12345678901", Status: iban.StatusComplete},
		},
		{
			in:   "SE4550000000058398257466",
			want: iban.Account{Country: "SE", BankCode: "500", AccountNumber: "00000058398257466", Status: iban.StatusComplete},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.want.Country, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, iban.Decompose(tc.in))
		})
	}
}

func TestDecompose_EveryRegisteredCountryHasAnExample(t *testing.T) {
	t.Parallel()

	examples := map[string]string{
		"AT": "AT611904300234573201",
		"BE": "BE68539007547034",
		"CH": "CH9300762011623852957",
		"DE": "DE89370400440532013000",
		"DK": "DK5000400440116243",
		"ES": "ES9121000418450200051332",
		"FI": "FI2112345600000785",
		"FR": "FR1420041010050500013M02606",
		"GB": "GB29NWBK60161331926819",
		"IE": "IE29AIBK93115212345678",
		"IT": "IT60X0542811101000000123456",
		"LU": "LU280019400644750000",
		"NL": "NL91ABNA0417164300",
		"NO": "NO9386011117947",
		"PT": "PT50000201231234567890154",
		"SE": "SE4550000000058398257466",
	}

	for _, cc := range iban.Countries() {
		ex, ok := examples[cc]
		require.True(t, ok, "no example for %s", cc)
		acc := iban.Decompose(ex)
		require.Equal(t, iban.StatusComplete, acc.Status, cc)
		require.NotEmpty(t, acc.BankCode, cc)
		require.NotEmpty(t, acc.AccountNumber, cc)
	}
}

func TestDecompose_UnknownCountryFallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want iban.Account
	}{
		{
			in:   "SA0380000000608010167519",
			want: iban.Account{Country: "SA", BankCode: "8000", AccountNumber: "0000608010167519", Status: iban.StatusPartial},
		},
		{
			in:   "XK051212012345678906",
			want: iban.Account{Country: "XK", BankCode: "1212", AccountNumber: "012345678906", Status: iban.StatusPartial},
		},
		{
			in:   "PL61109010140000071219812874",
			want: iban.Account{Country: "PL", BankCode: "1090", AccountNumber: "10140000071219812874", Status: iban.StatusPartial},
		},
	}

	for _, tc := range tests {
		got := iban.Decompose(tc.in)
		require.Equal(t, tc.want, got)
		require.NotEmpty(t, got.BankCode)
		require.NotEmpty(t, got.AccountNumber)
	}
}

func TestDecompose_LengthMismatchFallsBack(t *testing.T) {
	t.Parallel()

	// Checksum-valid, but 19 characters where DE expects 22.
	got := iban.Decompose("DE41370400440532013")
	require.Equal(t, iban.Account{
		Country:       "DE",
		BankCode:      "3704",
		AccountNumber: "00440532013",
		Status:        iban.StatusPartial,
	}, got)
}

func TestDecompose_AssembledUnknownCountry(t *testing.T) {
	t.Parallel()

	s, err := iban.Assemble("ZZ", "12345678901234")
	require.NoError(t, err)
	require.Equal(t, "ZZ1812345678901234", s)

	got := iban.Decompose(s)
	require.Equal(t, iban.StatusPartial, got.Status)
	require.Equal(t, "1234", got.BankCode)
	require.Equal(t, "5678901234", got.AccountNumber)
	require.Empty(t, got.BranchCode)
}

func TestDecompose_InvalidInputIsNotSliced(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "DE", "DE8937", "not an iban!!", "DE88370400440532013000", "1234567890123456"} {
		got := iban.Decompose(in)
		require.Equal(t, iban.Account{Status: iban.StatusInvalid}, got, in)
		require.Equal(t, got, iban.DecomposeNormalized(in), in)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	acc, err := iban.Parse("DE89 3704 0044 0532 0130 00")
	require.NoError(t, err)
	require.Equal(t, "37040044", acc.BankCode)

	acc, err = iban.Parse("DE8937")
	require.ErrorIs(t, err, iban.ErrInvalid)
	require.Equal(t, iban.StatusInvalid, acc.Status)

	r, ok := iban.ReasonOf(err)
	require.True(t, ok)
	require.Equal(t, iban.ReasonTooShort, r)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "invalid", iban.StatusInvalid.String())
	require.Equal(t, "complete", iban.StatusComplete.String())
	require.Equal(t, "partial", iban.StatusPartial.String())
	require.Equal(t, "unknown", iban.Status(42).String())
}
