package splitgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwets/sans/color"
	"github.com/zwets/sans/splitgraph"
)

// Equal weights keep insertion order: a later offer of the same weight
// sorts after an earlier one.
func TestSplitListTieBreakIsInsertionOrder(t *testing.T) {
	list := splitgraph.NewSplitList(4)
	mk := func(bit int) color.Set {
		s, err := color.New(8)
		require.NoError(t, err)
		return s.Set(bit)
	}
	list.Offer(2, mk(0))
	list.Offer(2, mk(1))
	list.Offer(3, mk(2))
	list.Offer(2, mk(3))

	entries := list.Entries()
	require.Len(t, entries, 4)
	assert.True(t, entries[0].Color.Test(2))
	assert.True(t, entries[1].Color.Test(0))
	assert.True(t, entries[2].Color.Test(1))
	assert.True(t, entries[3].Color.Test(3))
}

// The list size is min(distinct offers, capacity).
func TestSplitListSizeBoundedByCapacity(t *testing.T) {
	list := splitgraph.NewSplitList(3)
	for i := 0; i < 5; i++ {
		s, err := color.New(8)
		require.NoError(t, err)
		list.Offer(float64(i), s.Set(i))
	}
	assert.Equal(t, 3, list.Len())

	short := splitgraph.NewSplitList(10)
	s, err := color.New(8)
	require.NoError(t, err)
	short.Offer(1, s.Set(0))
	assert.Equal(t, 1, short.Len())
}
