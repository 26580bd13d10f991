// Package tree implements the unrooted multifurcating tree that a
// strictly compatible split list is refined into, and its Newick
// serialisation.  The representation follows the rooted-tree shape used
// elsewhere in this module's lineage: a graph.Directed adjacency list
// with arcs from the root toward the leaves and a parallel node slice,
// here extended with the color set of each subtree's taxa.
package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/soniakeys/graph"

	"github.com/zwets/sans/color"
)

// NameMap maps an input index to a human-readable taxon name for Newick
// emission.  A nil map, or a missing entry, falls back to the decimal
// index.
type NameMap map[uint64]string

// Name returns the taxon name for input i.
func (m NameMap) Name(i int) string {
	if s, ok := m[uint64(i)]; ok {
		return s
	}
	return strconv.Itoa(i)
}

// SplitNode holds the data for a single node of a SplitTree.
type SplitNode struct {
	Name      string    // taxon name; empty for internal nodes
	Taxa      color.Set // all inputs below this node
	HasWeight bool      // set when a refinement put a split on this arc
	Weight    float64   // weight of the split realised by the arc above
}

// SplitTree is a tree under refinement.  Arcs are directed from Root
// toward the leaves.  Invariants: a node's Taxa is the disjoint union of
// its children's Taxa, and the root's Taxa is the full color set.  The
// root is artificial: it carries no weight and has a single child, the
// star over all inputs, which refinement progressively resolves.
type SplitTree struct {
	Tree    graph.Directed // adjacency list tree structure
	Root    graph.NI       // root node of tree
	Nodes   []SplitNode    // parallel to Tree
	NumTaxa int            // number of inputs
}

// Build returns the star tree over numTaxa inputs: a root whose taxa is
// the universe, with a single child holding every input as a leaf.
func Build(numTaxa int, names NameMap) (SplitTree, error) {
	full, err := color.Full(numTaxa)
	if err != nil {
		return SplitTree{}, errors.Wrap(err, "tree: Build")
	}
	t := SplitTree{NumTaxa: numTaxa, Root: 0}
	t.Nodes = append(t.Nodes, SplitNode{Taxa: full}, SplitNode{Taxa: full})
	star := make([]graph.NI, numTaxa)
	for i := 0; i < numTaxa; i++ {
		leaf, err := color.New(numTaxa)
		if err != nil {
			return SplitTree{}, err
		}
		star[i] = graph.NI(len(t.Nodes))
		t.Nodes = append(t.Nodes, SplitNode{Name: names.Name(i), Taxa: leaf.Set(i)})
	}
	t.Tree.AdjacencyList = graph.AdjacencyList{{1}, star}
	for range star {
		t.Tree.AdjacencyList = append(t.Tree.AdjacencyList, nil)
	}
	return t, nil
}

// Refine folds split s with the given weight into the tree: it descends
// to the node whose children the split bipartitions, groups the children
// on one side under a new intermediate node carrying the split's weight,
// or, when that side is already a single child, puts the weight on the
// child's existing arc.  A split that cannot refine the tree is a
// programmer error (it passed a strict-compatibility test it should have
// failed); Refine panics with an error value citing the offending
// split's colors, which the filter layer converts back to an error.
func (t *SplitTree) Refine(s color.Set, weight float64) {
	if color.IsTrivial(s) {
		panic(errors.Errorf("tree: trivial split %v cannot refine", s))
	}
	// Splits are unordered pairs: normalising first makes the refined
	// shape independent of which side the caller passed.
	s = color.Normalize(s)
	t.refine(t.Root, s, s.Complement(), weight)
}

// refine descends from v looking for the attachment node of the split
// with sides s and notS.  At every node visited, at least one full side
// of the split is contained in the node's taxa.
func (t *SplitTree) refine(v graph.NI, s, notS color.Set, weight float64) {
	children := t.Tree.AdjacencyList[v]

	// Partition v's children by split side.
	var sKids, nKids []graph.NI
	straddler := graph.NI(-1)
	for _, c := range children {
		ct := t.Nodes[c].Taxa
		switch {
		case subset(ct, s):
			sKids = append(sKids, c)
		case subset(ct, notS):
			nKids = append(nKids, c)
		case straddler >= 0:
			panic(incompatible(s, notS))
		default:
			straddler = c
		}
	}

	if straddler >= 0 {
		// The split bipartitions a deeper node: the one straddling
		// child must wholly contain one side, and every other child
		// then lies on the opposite side.
		st := t.Nodes[straddler].Taxa
		if !subset(s, st) && !subset(notS, st) {
			panic(incompatible(s, notS))
		}
		t.refine(straddler, s, notS, weight)
		return
	}

	// Every child falls wholly on one side: the split attaches here.
	// Group whichever side is fully contained in v's taxa, so the new
	// arc separates exactly s from notS.
	taxa := t.Nodes[v].Taxa
	switch {
	case subset(s, taxa):
		t.group(v, sKids, s, weight)
	case subset(notS, taxa):
		t.group(v, nKids, notS, weight)
	default:
		panic(incompatible(s, notS))
	}
}

// group realises a split side at node v.  When the side is a single
// child its arc already separates the split and only needs the weight;
// otherwise a new intermediate node takes the side's children, replacing
// them at the position of the first.
func (t *SplitTree) group(v graph.NI, side []graph.NI, taxa color.Set, weight float64) {
	if len(side) == 0 {
		panic(incompatible(taxa, taxa.Complement()))
	}
	if len(side) == 1 {
		t.Nodes[side[0]].HasWeight = true
		t.Nodes[side[0]].Weight = weight
		return
	}
	u := graph.NI(len(t.Nodes))
	t.Nodes = append(t.Nodes, SplitNode{Taxa: taxa, HasWeight: true, Weight: weight})
	t.Tree.AdjacencyList = append(t.Tree.AdjacencyList, side)

	old := t.Tree.AdjacencyList[v]
	moved := make(map[graph.NI]bool, len(side))
	for _, c := range side {
		moved[c] = true
	}
	kept := make([]graph.NI, 0, len(old)-len(side)+1)
	placed := false
	for _, c := range old {
		if moved[c] {
			if !placed {
				kept = append(kept, u)
				placed = true
			}
			continue
		}
		kept = append(kept, c)
	}
	t.Tree.AdjacencyList[v] = kept
}

// Splits returns, in depth-first order, the normalised split color of
// every arc a refinement weighted, for comparison against an accepted
// split list.  The walk is the subtree-set recursion of a character
// table computation, restricted to weighted arcs.
func (t *SplitTree) Splits() []color.Set {
	var out []color.Set
	var f func(graph.NI)
	f = func(p graph.NI) {
		for _, to := range t.Tree.AdjacencyList[p] {
			if t.Nodes[to].HasWeight {
				out = append(out, color.Normalize(t.Nodes[to].Taxa))
			}
			f(to)
		}
	}
	f(t.Root)
	return out
}

// Newick serialises the tree: a leaf emits its name, an internal node
// emits (child1,...,childm):weight with children in refinement insertion
// order, and the whole tree terminates with a semicolon.  The artificial
// root is skipped, so the outermost printed node is the star, which
// never carries a weight.
func (t *SplitTree) Newick() string {
	var f func(graph.NI) string
	f = func(p graph.NI) (s string) {
		if to := t.Tree.AdjacencyList[p]; len(to) > 0 {
			c := make([]string, len(to))
			for i, ch := range to {
				c[i] = f(ch)
			}
			s = fmt.Sprintf("(%s)", strings.Join(c, ","))
		}
		nd := t.Nodes[p]
		s += nd.Name
		if nd.HasWeight {
			s += ":" + strconv.FormatFloat(nd.Weight, 'g', -1, 64)
		}
		return s
	}
	start := t.Root
	if to := t.Tree.AdjacencyList[start]; len(to) == 1 {
		start = to[0]
	}
	return f(start) + ";"
}

// NewickAll joins the Newick form of each tree with newlines, in filter
// order, for n-tree output.
func NewickAll(trees []SplitTree) string {
	lines := make([]string, len(trees))
	for i := range trees {
		lines[i] = trees[i].Newick()
	}
	return strings.Join(lines, "\n")
}

// subset reports a ⊆ b.
func subset(a, b color.Set) bool {
	return a.Intersect(b).Equal(a)
}

func incompatible(s, notS color.Set) error {
	return errors.Errorf("tree: split %v|%v does not bipartition any node of the tree", s, notS)
}
