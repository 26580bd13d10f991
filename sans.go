package sans

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/zwets/sans/color"
	"github.com/zwets/sans/filter"
	"github.com/zwets/sans/splitgraph"
	"github.com/zwets/sans/tree"
)

// Engine packages the index tables, the split list, and the filter stage
// into one owning object.  Global access through the package-level
// functions is a convenience; callers who prefer explicit plumbing use
// the Engine returned by Init directly.
type Engine struct {
	n, k int
	sg   *splitgraph.Engine
}

// defaultEngine backs the package-level convenience functions.
var defaultEngine *Engine

var logger = log.New(os.Stderr, "sans: ", 0)

// SetLogger overrides the destination for verbose progress messages,
// here and in the splitgraph package.
func SetLogger(l *log.Logger) {
	logger = l
	splitgraph.SetLogger(l)
}

// Init builds an Engine for n input genomes, k-mer length k, and split
// list capacity t, and installs it as the package-level default.  It
// must be called before any other operation; the configuration is
// validated up front (misconfiguration is fatal at ingestion time).
func Init(n, k, t int) (*Engine, error) {
	sg, err := splitgraph.New(n, k, t)
	if err != nil {
		return nil, err
	}
	e := &Engine{n: n, k: k, sg: sg}
	defaultEngine = e
	return e, nil
}

// AddKmers streams one input's DNA into the index under color index c.
// canonicalise merges each k-mer with its reverse complement; maxIUPAC
// caps ambiguity expansion per window (0 disallows ambiguity).
func (e *Engine) AddKmers(seq string, c int, canonicalise bool, maxIUPAC uint) error {
	return e.sg.AddKmers(seq, c, canonicalise, maxIUPAC)
}

// AddWeights collapses the index into the ranked split list using the
// supplied reducer.  Ingestion must be complete.
func (e *Engine) AddWeights(reducer splitgraph.Reducer, verbose bool) error {
	return e.sg.AddWeights(reducer, verbose)
}

// Splits returns the ranked split list computed by AddWeights.
func (e *Engine) Splits() []splitgraph.WeightedSplit {
	return e.sg.Splits()
}

// FilterStrict greedily selects a strictly compatible subset of the
// split list and materialises it as a tree; the caller serialises the
// result with its Newick method, mapping leaf indices through names.
func (e *Engine) FilterStrict(names tree.NameMap, verbose bool) (tree.SplitTree, []color.Set, error) {
	splits := e.sg.Splits()
	t, accepted, err := filter.Strict(e.n, splits, names)
	if err != nil {
		return tree.SplitTree{}, nil, err
	}
	if verbose {
		logger.Printf("filter_strict: accepted %d of %d splits", len(accepted), len(splits))
	}
	return t, accepted, nil
}

// FilterWeakly greedily selects a weakly compatible subset of the split
// list.  No tree or Newick form is produced: a weakly compatible split
// system is not in general a tree.
func (e *Engine) FilterWeakly(verbose bool) []color.Set {
	splits := e.sg.Splits()
	accepted := filter.Weakly(splits)
	if verbose {
		logger.Printf("filter_weakly: accepted %d of %d splits", len(accepted), len(splits))
	}
	return accepted
}

// FilterNTree distributes the split list over up to n strictly
// compatible trees, each candidate joining the first tree that admits
// it.  Trees come back in decreasing aggregate weight priority; join
// their Newick forms with tree.NewickAll.
func (e *Engine) FilterNTree(n int, names tree.NameMap, verbose bool) ([]tree.SplitTree, [][]color.Set, error) {
	splits := e.sg.Splits()
	trees, accepted, err := filter.NTree(n, e.n, splits, names)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		logger.Printf("filter_n_tree: %d trees from %d splits", len(trees), len(splits))
	}
	return trees, accepted, nil
}

// The package-level forms of the Engine operations, running against the
// engine installed by the last Init.

func active() (*Engine, error) {
	if defaultEngine == nil {
		return nil, errors.New("sans: Init must be called first")
	}
	return defaultEngine, nil
}

// AddKmers calls AddKmers on the default engine.
func AddKmers(seq string, c int, canonicalise bool, maxIUPAC uint) error {
	e, err := active()
	if err != nil {
		return err
	}
	return e.AddKmers(seq, c, canonicalise, maxIUPAC)
}

// AddWeights calls AddWeights on the default engine.
func AddWeights(reducer splitgraph.Reducer, verbose bool) error {
	e, err := active()
	if err != nil {
		return err
	}
	return e.AddWeights(reducer, verbose)
}

// FilterStrict calls FilterStrict on the default engine.
func FilterStrict(names tree.NameMap, verbose bool) (tree.SplitTree, []color.Set, error) {
	e, err := active()
	if err != nil {
		return tree.SplitTree{}, nil, err
	}
	return e.FilterStrict(names, verbose)
}

// FilterWeakly calls FilterWeakly on the default engine.
func FilterWeakly(verbose bool) ([]color.Set, error) {
	e, err := active()
	if err != nil {
		return nil, err
	}
	return e.FilterWeakly(verbose), nil
}

// FilterNTree calls FilterNTree on the default engine.
func FilterNTree(n int, names tree.NameMap, verbose bool) ([]tree.SplitTree, [][]color.Set, error) {
	e, err := active()
	if err != nil {
		return nil, nil, err
	}
	return e.FilterNTree(n, names, verbose)
}
