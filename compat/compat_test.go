package compat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwets/sans/color"
	"github.com/zwets/sans/compat"
)

func set(t *testing.T, n int, bits ...int) color.Set {
	t.Helper()
	s, err := color.New(n)
	require.NoError(t, err)
	for _, b := range bits {
		s = s.Set(b)
	}
	return s
}

// Nested splits are always strictly compatible; genuinely crossing
// splits (every one of the four Venn cells non-empty) are not. Four
// taxa is the smallest universe where a crossing pair exists at all --
// any two splits over three taxa are trivially compatible.
func TestStrictNestedVsCrossing(t *testing.T) {
	s01 := set(t, 4, 0, 1) // {0,1}|{2,3}
	s0 := set(t, 4, 0)     // {0}|{1,2,3}, nested inside s01
	s02 := set(t, 4, 0, 2) // {0,2}|{1,3}, crosses s01

	assert.True(t, compat.Strict(s0, []color.Set{s01}))
	assert.False(t, compat.Strict(s02, []color.Set{s01}))
}

func TestStrictEmptyAcceptedAlwaysHolds(t *testing.T) {
	s0 := set(t, 4, 0)
	assert.True(t, compat.Strict(s0, nil))
}

func TestWeaklyHoldsForPairwiseCompatibleSplits(t *testing.T) {
	s0 := set(t, 3, 0)
	s01 := set(t, 3, 0, 1)
	assert.True(t, compat.Weakly(s01, []color.Set{s0}))
}

func TestWeaklyRejectsForbiddenTriple(t *testing.T) {
	// Six genomes: s={0,1,2,3}, a={0,1,4}, b={0,2,4}. All three cells
	// s∩a∩b={0}, s∩a∩¬b={1}, s∩¬a∩b={2} are non-empty, so s forms a
	// forbidden triple with a and b already accepted.
	s := set(t, 6, 0, 1, 2, 3)
	a := set(t, 6, 0, 1, 4)
	b := set(t, 6, 0, 2, 4)

	assert.False(t, compat.Weakly(s, []color.Set{a, b}))
}
