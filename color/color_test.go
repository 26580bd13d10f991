package color_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwets/sans/color"
)

func TestNewRejectsOutOfRange(t *testing.T) {
	_, err := color.New(0)
	assert.Error(t, err)

	_, err = color.New(color.MaxN + 1)
	assert.Error(t, err)
}

func TestSet64Basics(t *testing.T) {
	s, err := color.New(4)
	require.NoError(t, err)

	s = s.Set(0).Set(2)
	assert.True(t, s.Test(0))
	assert.False(t, s.Test(1))
	assert.True(t, s.Test(2))
	assert.Equal(t, 2, s.PopCount())

	c := s.Complement()
	assert.True(t, c.Test(1))
	assert.True(t, c.Test(3))
	assert.Equal(t, 2, c.PopCount())

	u := s.Union(c)
	assert.Equal(t, 4, u.PopCount())

	i := s.Intersect(c)
	assert.Equal(t, 0, i.PopCount())
}

func TestSetWideBasics(t *testing.T) {
	s, err := color.New(200)
	require.NoError(t, err)

	s = s.Set(0).Set(65).Set(199)
	assert.True(t, s.Test(65))
	assert.Equal(t, 3, s.PopCount())

	c := s.Complement()
	assert.Equal(t, 197, c.PopCount())
	assert.False(t, c.Test(65))

	assert.True(t, s.Union(c).Equal(mustFull(t, 200)))
}

func TestNormalizePicksSmallerSide(t *testing.T) {
	n := 5
	full, err := color.Full(n)
	require.NoError(t, err)
	_ = full

	for _, bits := range []([]int){{0}, {1, 2}, {0, 1, 2, 3}} {
		s, err := color.New(n)
		require.NoError(t, err)
		for _, b := range bits {
			s = s.Set(b)
		}
		norm := color.Normalize(s)
		assert.False(t, color.IsTrivial(norm))
		other := norm.Complement()
		assert.True(t, norm.Less(other) || norm.Equal(other))
	}
}

func TestIsTrivial(t *testing.T) {
	empty, err := color.New(4)
	require.NoError(t, err)
	assert.True(t, color.IsTrivial(empty))

	full, err := color.Full(4)
	require.NoError(t, err)
	assert.True(t, color.IsTrivial(full))

	half := empty.Set(0)
	assert.False(t, color.IsTrivial(half))
}

func TestHashStableAndDistinguishing(t *testing.T) {
	a, _ := color.New(10)
	a = a.Set(1).Set(3)
	b, _ := color.New(10)
	b = b.Set(1).Set(3)
	c, _ := color.New(10)
	c = c.Set(2)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestSetAsMapKey(t *testing.T) {
	m := map[color.Set]int{}
	a, _ := color.New(8)
	a = a.Set(1)
	b, _ := color.New(8)
	b = b.Set(1)
	m[a] = 1
	m[b] = 2 // same set, should overwrite
	assert.Len(t, m, 1)
}

func ExampleSet64_String() {
	s, _ := color.New(6)
	s = s.Set(0).Set(3).Set(5)
	fmt.Println(s)
	// Output:
	// {0,3,5}
}

func mustFull(t *testing.T, n int) color.Set {
	t.Helper()
	s, err := color.Full(n)
	require.NoError(t, err)
	return s
}
