// Package filter implements the three greedy split filters: a common
// iterate-in-weight-order shape over compat's predicates, plus tree
// materialisation for the strict and n-tree variants.
package filter

import (
	"github.com/pkg/errors"

	"github.com/zwets/sans/color"
	"github.com/zwets/sans/compat"
	"github.com/zwets/sans/splitgraph"
	"github.com/zwets/sans/tree"
)

// Strict greedily accepts splits from the weight-descending list using
// compat.Strict, then refines a SplitTree by folding in the accepted
// splits in the order they were accepted. Refinement inconsistencies --
// a split that passed the strict test but fails to refine the tree,
// which should not happen -- surface as a returned error rather than a
// panic crossing this package boundary.
func Strict(numTaxa int, splits []splitgraph.WeightedSplit, names tree.NameMap) (result tree.SplitTree, accepted []color.Set, err error) {
	var accWeighted []splitgraph.WeightedSplit
	for _, s := range splits {
		colors := weightedColors(accWeighted)
		if compat.Strict(s.Color, colors) {
			accWeighted = append(accWeighted, s)
		}
	}

	t, err := tree.Build(numTaxa, names)
	if err != nil {
		return tree.SplitTree{}, nil, err
	}
	if err := refineAll(&t, accWeighted); err != nil {
		return tree.SplitTree{}, nil, err
	}
	return t, weightedColors(accWeighted), nil
}

// Weakly greedily accepts splits using compat.Weakly. No tree is built:
// weakly compatible split systems are not in general trees and have no
// Newick projection here.
func Weakly(splits []splitgraph.WeightedSplit) []color.Set {
	var accepted []color.Set
	for _, s := range splits {
		if compat.Weakly(s.Color, accepted) {
			accepted = append(accepted, s.Color)
		}
	}
	return accepted
}

// NTree maintains n disjoint accepted lists; a candidate joins the first
// list where compat.Strict holds, or is discarded if none admit it.
// Returns one SplitTree per non-empty list (in list order) and each
// list's accepted splits in filter order.
func NTree(n int, numTaxa int, splits []splitgraph.WeightedSplit, names tree.NameMap) (trees []tree.SplitTree, accepted [][]color.Set, err error) {
	if n <= 0 {
		return nil, nil, errors.Errorf("filter: n must be positive, got %d", n)
	}
	lists := make([][]splitgraph.WeightedSplit, n)

	for _, s := range splits {
		for i := 0; i < n; i++ {
			if compat.Strict(s.Color, weightedColors(lists[i])) {
				lists[i] = append(lists[i], s)
				break
			}
		}
	}

	accepted = make([][]color.Set, n)
	for i, list := range lists {
		accepted[i] = weightedColors(list)
		if len(list) == 0 {
			continue
		}
		t, buildErr := tree.Build(numTaxa, names)
		if buildErr != nil {
			return nil, nil, buildErr
		}
		if err := refineAll(&t, list); err != nil {
			return nil, nil, err
		}
		trees = append(trees, t)
	}
	return trees, accepted, nil
}

func weightedColors(ws []splitgraph.WeightedSplit) []color.Set {
	out := make([]color.Set, len(ws))
	for i, w := range ws {
		out[i] = w.Color
	}
	return out
}

// refineAll folds every split in ws into t, converting a tree-package
// panic (refinement inconsistency, a programmer error) into a returned
// error so it never crosses this package's public API.
func refineAll(t *tree.SplitTree, ws []splitgraph.WeightedSplit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "filter: refinement inconsistency")
				return
			}
			panic(r)
		}
	}()
	for _, s := range ws {
		t.Refine(s.Color, s.Weight)
	}
	return nil
}
