package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComparatorStrictPairs(t *testing.T) {
	c := NewComparator()

	lessPairs := [][]string{
		{"1.0.0", "1.0.1"},
		{"1.0.0", "1.1.0"},
		{"1.9.9", "2.0.0"},
		{"1.0.0-alpha", "1.0.0"},
		{"1.0.0-alpha.1", "1.0.0-beta"},
	}
	for _, pair := range lessPairs {
		r := c.Compare(pair[0], pair[1])
		require.True(t, r.Comparable, "%s vs %s", pair[0], pair[1])
		require.Equal(t, Less, r.Result, "%s < %s", pair[0], pair[1])
	}
}

func TestComparatorLenientFallback(t *testing.T) {
	c := NewComparator()

	// neither side is strict semver, both fall through to the lenient grammar
	r := c.Compare("1.2", "1.3")
	require.True(t, r.Comparable)
	require.Equal(t, Less, r.Result)

	r = c.Compare("7", "7")
	require.True(t, r.Comparable)
	require.Equal(t, Equal, r.Result)
}

func TestComparatorMixedGrammars(t *testing.T) {
	c := NewComparator()

	// a strict version against a lenient-only one uses different parsers
	r := c.Compare("1.0.0-alpha", "1.2")
	require.False(t, r.Comparable)
}

func TestComparatorTooManyComponents(t *testing.T) {
	c := NewComparator()

	r := c.Compare("1.2.3.4", "1.2.3")
	require.False(t, r.Comparable)
}
