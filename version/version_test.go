package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected Version
	}{
		{Name: "Full", Input: "1.2.3", Expected: Version{Major: 1, Minor: 2, Patch: 3}},
		{Name: "WithBuild", Input: "1.2.3+45", Expected: Version{Major: 1, Minor: 2, Patch: 3, Build: "45"}},
		{Name: "TwoComponents", Input: "1.2", Expected: Version{Major: 1, Minor: 2}},
		{Name: "OneComponent", Input: "7", Expected: Version{Major: 7}},
		{Name: "Empty", Input: "", Expected: Version{}},
		{Name: "NonNumericComponent", Input: "1.x.3", Expected: Version{Major: 1, Minor: 0, Patch: 3}},
		{Name: "LeadingNonNumeric", Input: "v1.2.0", Expected: Version{Major: 0, Minor: 2, Patch: 0}},
		{Name: "NonNumericBuild", Input: "1.0.0+beta", Expected: Version{Major: 1, Build: "beta"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			v, err := Parse(tc.Input)
			require.NoError(t, err)
			require.Equal(t, tc.Expected, v)
		})
	}
}

func TestParseTooManyComponents(t *testing.T) {
	_, err := Parse("1.2.3.4")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "1.2.3.4", pe.Input)
}

func TestStringRoundTrip(t *testing.T) {
	versions := []Version{
		{},
		{Major: 1},
		{Major: 1, Minor: 2, Patch: 3},
		{Major: 0, Minor: 9, Patch: 17, Build: "204"},
		{Major: 12, Minor: 0, Patch: 1, Build: "7"},
	}
	for _, v := range versions {
		parsed, err := Parse(v.String())
		require.NoError(t, err)
		require.Equal(t, v, parsed)
	}
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		Name     string
		A, B     string
		Expected int
	}{
		{Name: "Equal", A: "1.2.3", B: "1.2.3", Expected: Equal},
		{Name: "MajorWins", A: "2.0.0", B: "1.9.9", Expected: Greater},
		{Name: "MinorWins", A: "1.3.0", B: "1.2.9", Expected: Greater},
		{Name: "PatchWins", A: "1.2.3", B: "1.2.4", Expected: Less},
		{Name: "BuildTieBreak", A: "1.2.3+10", B: "1.2.3+9", Expected: Greater},
		{Name: "BuildNonNumericIgnored", A: "1.2.3+abc", B: "1.2.3+9", Expected: Equal},
		{Name: "BuildMissingOneSide", A: "1.2.3", B: "1.2.3+9", Expected: Equal},
		{Name: "CodeOnly", A: "0.0.0+204", B: "0.0.0+203", Expected: Greater},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			a, b := MustParse(tc.A), MustParse(tc.B)
			require.Equal(t, tc.Expected, Compare(a, b))
			require.Equal(t, -tc.Expected, Compare(b, a))
		})
	}
}

// The ordering must be total: exactly one of less/equal/greater holds for
// every pair, and the relation is transitive along a sorted chain.
func TestCompareTotalOrder(t *testing.T) {
	chain := []Version{
		MustParse("0.0.1"),
		MustParse("0.1.0"),
		MustParse("0.1.1"),
		MustParse("1.0.0+1"),
		MustParse("1.0.0+2"),
		MustParse("1.0.1"),
		MustParse("2.0.0"),
	}

	for i, a := range chain {
		for j, b := range chain {
			got := Compare(a, b)
			switch {
			case i < j:
				require.Equal(t, Less, got, "%s < %s", a, b)
			case i > j:
				require.Equal(t, Greater, got, "%s > %s", a, b)
			default:
				require.Equal(t, Equal, got, "%s == %s", a, b)
			}
		}
	}
}

func TestFromCode(t *testing.T) {
	v := FromCode(204)
	require.Equal(t, Version{Build: "204"}, v)
	require.True(t, v.Greater(FromCode(203)))
}
