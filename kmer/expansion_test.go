package kmer_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwets/sans/kmer"
)

func windowStrings(t *testing.T, windows []*kmer.Window) []string {
	t.Helper()
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.Forward().String()
	}
	sort.Strings(out)
	return out
}

func TestExpansionConcreteSequenceStaysSingular(t *testing.T) {
	e, err := kmer.NewExpansion(4, 2)
	require.NoError(t, err)
	var full bool
	for _, b := range []byte("ACGT") {
		full, _ = e.Push(b)
	}
	assert.True(t, full)
	windows, product := e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
	assert.Equal(t, "ACGT", windows[0].Forward().String())
}

func TestExpansionFansOutWithinCap(t *testing.T) {
	// "ACRT", k=4, max_iupac=2 -> {ACAT, ACGT}, each weighted 1/2.
	e, err := kmer.NewExpansion(4, 2)
	require.NoError(t, err)
	var full bool
	for _, b := range []byte("ACRT") {
		full, _ = e.Push(b)
	}
	assert.True(t, full)
	windows, product := e.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, uint(2), product)
	assert.Equal(t, []string{"ACAT", "ACGT"}, windowStrings(t, windows))
}

func TestExpansionDropsWindowExceedingCap(t *testing.T) {
	// "N" alone fans to 4, which exceeds a cap of 2: the window resets.
	e, err := kmer.NewExpansion(4, 2)
	require.NoError(t, err)
	full, ok := e.Push('A')
	assert.True(t, ok)
	assert.False(t, full)
	full, ok = e.Push('N')
	assert.True(t, ok)
	assert.False(t, full)
	windows, product := e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
	full, _ = windows[0].Push('C')
	assert.False(t, full) // window was reset, needs k fresh bases to fill again
}

func TestExpansionZeroCapRejectsAnyAmbiguity(t *testing.T) {
	e, err := kmer.NewExpansion(4, 0)
	require.NoError(t, err)
	e.Push('A')
	full, ok := e.Push('R')
	assert.True(t, ok)
	assert.False(t, full)
	windows, product := e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
}

func TestExpansionUnknownSymbolResets(t *testing.T) {
	e, err := kmer.NewExpansion(4, 4)
	require.NoError(t, err)
	e.Push('A')
	e.Push('C')
	full, ok := e.Push('X')
	assert.False(t, ok)
	assert.False(t, full)
	windows, product := e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
}

// An ambiguous position stops costing multiplicity once it slides out
// of the window, and the fanned-out windows collapse back to one.
func TestExpansionFactorSlidesOut(t *testing.T) {
	e, err := kmer.NewExpansion(3, 2)
	require.NoError(t, err)
	for _, b := range []byte("ARCC") {
		e.Push(b)
	}
	windows, product := e.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, uint(2), product)
	assert.Equal(t, []string{"ACC", "GCC"}, windowStrings(t, windows))

	// One more concrete base pushes R out: GCC/ACC both become CCT.
	full, ok := e.Push('T')
	assert.True(t, ok)
	assert.True(t, full)
	windows, product = e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
	assert.Equal(t, "CCT", windows[0].Forward().String())

	// A fresh ambiguity code fits the cap again.
	full, ok = e.Push('Y')
	assert.True(t, ok)
	assert.True(t, full)
	windows, product = e.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, uint(2), product)
}

func TestExpansionReset(t *testing.T) {
	e, err := kmer.NewExpansion(3, 4)
	require.NoError(t, err)
	e.Push('A')
	e.Push('C')
	e.Reset()
	windows, product := e.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, uint(1), product)
	full, _ := windows[0].Push('G')
	assert.False(t, full)
}
