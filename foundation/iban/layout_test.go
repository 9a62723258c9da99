package iban

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_LayoutsAreConsistent(t *testing.T) {
	t.Parallel()

	for cc, l := range registry {
		require.Equal(t, cc, l.Country)
		require.NoError(t, l.Validate(), cc)

		spans := []Span{l.Bank, l.Branch, l.Account}
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				a, b := spans[i], spans[j]
				if a.IsZero() || b.IsZero() {
					continue
				}
				require.False(t, a.Start < b.End && b.Start < a.End, "%s: spans %v and %v overlap", cc, a, b)
			}
		}
	}
}

func TestRegistry_RequiredCountries(t *testing.T) {
	t.Parallel()

	de, ok := LookupLayout("DE")
	require.True(t, ok)
	require.Equal(t, 22, de.Length)
	require.False(t, de.HasBranch())
	require.Equal(t, Span{0, 8}, de.Bank)
	require.Equal(t, Span{8, 18}, de.Account)

	fr, ok := LookupLayout("FR")
	require.True(t, ok)
	require.Equal(t, 27, fr.Length)
	require.True(t, fr.HasBranch())
	require.Equal(t, Span{5, 10}, fr.Branch)

	gb, ok := LookupLayout("GB")
	require.True(t, ok)
	require.Equal(t, 22, gb.Length)
	require.Equal(t, 4, gb.Bank.Len())
	require.Equal(t, 6, gb.Branch.Len())
	require.Equal(t, 8, gb.Account.Len())
}

func TestLookupLayout_NormalizesCode(t *testing.T) {
	t.Parallel()

	l, ok := LookupLayout("  gb ")
	require.True(t, ok)
	require.Equal(t, "GB", l.Country)

	for _, cc := range []string{"", "G", "GBR", "1B", "XX", "ZZ"} {
		_, ok := LookupLayout(cc)
		require.False(t, ok, cc)
	}
}

func TestLayoutValidate_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		l    Layout
	}{
		{name: "bad country", l: Layout{Country: "1A", Length: 20, Bank: Span{0, 4}, Account: Span{4, 16}}},
		{name: "length too small", l: Layout{Country: "ZZ", Length: 10, Bank: Span{0, 4}, Account: Span{4, 6}}},
		{name: "missing bank", l: Layout{Country: "ZZ", Length: 20, Account: Span{4, 16}}},
		{name: "missing account", l: Layout{Country: "ZZ", Length: 20, Bank: Span{0, 4}}},
		{name: "account past bban", l: Layout{Country: "ZZ", Length: 20, Bank: Span{0, 4}, Account: Span{4, 17}}},
		{name: "reversed branch", l: Layout{Country: "ZZ", Length: 20, Bank: Span{0, 4}, Branch: Span{8, 6}, Account: Span{8, 16}}},
	}

	for _, tc := range tests {
		require.Error(t, tc.l.Validate(), tc.name)
	}
}

func TestCountries_Sorted(t *testing.T) {
	t.Parallel()

	got := Countries()
	require.Len(t, got, len(registry))
	require.True(t, sort.StringsAreSorted(got))
	require.Subset(t, got, []string{"DE", "FR", "GB"})
}

func TestSpanSlice(t *testing.T) {
	t.Parallel()

	const s = "GB29NWBK60161331926819"
	require.Equal(t, "NWBK", Span{0, 4}.slice(s))
	require.Equal(t, "", Span{}.slice(s))
}
