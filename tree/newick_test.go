package tree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwets/sans/tree"
)

func TestParseNewickRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "(0,1)", "(0,1;", "(0,(1,2):x);"} {
		_, err := tree.ParseNewick(s, 3, nil)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseNewickRejectsUnknownLeaf(t *testing.T) {
	_, err := tree.ParseNewick("(0,1,weasel);", 3, nil)
	assert.Error(t, err)
}

// The Newick emitted after refinement, parsed and re-emitted, equals
// the original string.
func TestNewickRoundTrip(t *testing.T) {
	st, err := tree.Build(4, nil)
	require.NoError(t, err)
	st.Refine(set(t, 4, 1, 2, 3), 3)
	st.Refine(set(t, 4, 2, 3), 2)
	st.Refine(set(t, 4, 3), 0.25)

	emitted := st.Newick()
	parsed, err := tree.ParseNewick(emitted, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, emitted, parsed.Newick())
}

// The parsed tree's weighted splits equal the refined ones.
func TestParsedSplitsMatchRefined(t *testing.T) {
	names := tree.NameMap{0: "a", 1: "b", 2: "c", 3: "d", 4: "e"}
	st, err := tree.Build(5, names)
	require.NoError(t, err)
	st.Refine(set(t, 5, 2, 3, 4), 2)
	st.Refine(set(t, 5, 3, 4), 1)

	parsed, err := tree.ParseNewick(st.Newick(), 5, names)
	require.NoError(t, err)

	want := st.Splits()
	got := parsed.Splits()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "split %d: %v != %v", i, want[i], got[i])
	}
}

func TestParseNewickToleratesWhitespace(t *testing.T) {
	parsed, err := tree.ParseNewick("  (0, 1,( 2,3):2) ;  ", 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "(0,1,(2,3):2);", parsed.Newick())
}

func ExampleParseNewick() {
	parsed, _ := tree.ParseNewick("(0,(1,(2,3):2):3);", 4, nil)
	fmt.Println(parsed.Newick())
	// Output:
	// (0,(1,(2,3):2):3);
}
