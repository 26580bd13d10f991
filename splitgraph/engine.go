// Package splitgraph implements the k-mer/color-set index and the
// weighting pass that collapses it into a ranked split list.
package splitgraph

import (
	"math"

	"github.com/pkg/errors"

	"github.com/zwets/sans/color"
	"github.com/zwets/sans/kmer"
)

// Engine owns the process-wide index state: the k-mer presence index,
// the color-set weight accumulator, and the bounded split list.  The two
// index tables grow monotonically during ingestion and are drained by
// AddWeights; the split list is read-only from then on.
type Engine struct {
	n int
	k int
	t int

	kmerTable  map[kmer.Kmer]*kmerEntry
	colorTable map[colorKey]*accumulator

	list *SplitList
}

// kmerEntry holds the presence color set for a distinct k-mer, plus the
// sum of its per-window multiplicity contributions (1 for a concrete
// k-mer, 1/product for one emitted by IUPAC expansion).
type kmerEntry struct {
	colors color.Set
	weight float64
}

// colorKey names the map key used for colorTable: color.Set is an
// interface, and its concrete values (Set64 and SetWide, both comparable
// structs) serve directly as keys.
type colorKey = color.Set

type accumulator struct {
	occurrences uint32
	total       float64
}

// New builds an Engine for N input genomes, k-mer length k, and split-list
// capacity t. N and k are validated against color.MaxN and kmer.MaxK
// respectively; misconfiguration is fatal before ingestion starts.
func New(n, k, t int) (*Engine, error) {
	if n <= 0 {
		return nil, errors.Errorf("splitgraph: N must be positive, got %d", n)
	}
	if t <= 0 {
		return nil, errors.Errorf("splitgraph: split list capacity t must be positive, got %d", t)
	}
	if _, err := color.New(n); err != nil {
		return nil, errors.Wrap(err, "splitgraph: invalid N")
	}
	if _, err := kmer.New(k); err != nil {
		return nil, errors.Wrap(err, "splitgraph: invalid k")
	}
	return &Engine{
		n:          n,
		k:          k,
		t:          t,
		kmerTable:  make(map[kmer.Kmer]*kmerEntry),
		colorTable: make(map[colorKey]*accumulator),
		list:       NewSplitList(t),
	}, nil
}

// N returns the number of input genomes the Engine was configured for.
func (e *Engine) N() int { return e.n }

// K returns the k-mer length the Engine was configured for.
func (e *Engine) K() int { return e.k }

// AddKmers scans seq left to right, inserting color index c into the
// color set of every complete k-mer window. canonicalise requests
// min(K, reverse_complement(K)) per insertion. maxIUPAC bounds
// ambiguity expansion; pass 0 to disallow ambiguity entirely.
// Unknown characters reset the window and are not an error.
func (e *Engine) AddKmers(seq string, c int, canonicalise bool, maxIUPAC uint) error {
	if c < 0 || c >= e.n {
		return errors.Errorf("splitgraph: color index %d out of range [0,%d)", c, e.n)
	}

	expansion, err := kmer.NewExpansion(e.k, maxIUPAC)
	if err != nil {
		return errors.Wrap(err, "splitgraph: AddKmers")
	}

	for i := 0; i < len(seq); i++ {
		full, _ := expansion.Push(seq[i])
		if !full {
			continue
		}
		windows, product := expansion.Windows()
		contribution := 1.0 / float64(product)
		for _, w := range windows {
			k := w.Forward()
			if canonicalise {
				k = w.Canonical()
			}
			e.insert(k, c, contribution)
		}
	}
	return nil
}

// insert records that color index c has been observed for kmer k,
// creating or extending kmerTable[k]'s color set, and accumulates
// contribution into its running multiplicity-weighted total. Idempotent
// with respect to re-adding the same k-mer/color pair's color bit; the
// weight contribution still accumulates per window scanned.
func (e *Engine) insert(k kmer.Kmer, c int, contribution float64) {
	entry, ok := e.kmerTable[k]
	if !ok {
		cs, _ := color.New(e.n)
		entry = &kmerEntry{colors: cs}
		e.kmerTable[k] = entry
	}
	entry.colors = entry.colors.Set(c)
	entry.weight += contribution
}

// Reducer reduces a color set's raw occurrence count and multiplicity-
// weighted total into a single weight. total is a float64, not a
// uint32, because IUPAC-expanded k-mers contribute fractional weight.
// Pure function, supplied by the caller.
type Reducer func(occurrences uint32, total float64) float64

// ArithmeticMean is a ready-made Reducer: the arithmetic mean of
// occurrences and total.
func ArithmeticMean(occurrences uint32, total float64) float64 {
	return (float64(occurrences) + total) / 2
}

// GeometricMean is a ready-made Reducer: the geometric mean of
// occurrences and total.
func GeometricMean(occurrences uint32, total float64) float64 {
	return math.Sqrt(float64(occurrences) * total)
}

// AddWeights folds kmerTable into colorTable, computes a weight per
// color set via reducer, normalises each to its split identity, and
// offers non-trivial splits to the bounded split list. The color table
// is conceptually consumed afterward; AddWeights is idempotent only
// with respect to the resulting list, not with respect to re-running it
// against a further-populated kmerTable.
func (e *Engine) AddWeights(reducer Reducer, verbose bool) error {
	if reducer == nil {
		return errors.New("splitgraph: AddWeights requires a non-nil reducer")
	}

	for _, entry := range e.kmerTable {
		acc, ok := e.colorTable[entry.colors]
		if !ok {
			acc = &accumulator{}
			e.colorTable[entry.colors] = acc
		}
		acc.occurrences++
		acc.total += entry.weight
	}
	if verbose {
		logger.Printf("add_weights: folded %d k-mers into %d distinct color sets", len(e.kmerTable), len(e.colorTable))
	}

	// A color and its complement are distinct colorTable keys but
	// normalise to the same split; merge by max weight before offering.
	merged := make(map[colorKey]float64, len(e.colorTable))
	for cs, acc := range e.colorTable {
		weight := reducer(acc.occurrences, acc.total)
		normalised := color.Normalize(cs)
		if color.IsTrivial(normalised) {
			continue
		}
		if w, seen := merged[normalised]; !seen || weight > w {
			merged[normalised] = weight
		}
	}
	// Both index tables are drained, so a repeated call offers nothing.
	e.kmerTable = make(map[kmer.Kmer]*kmerEntry)
	e.colorTable = make(map[colorKey]*accumulator)
	for cs, weight := range merged {
		e.list.Offer(weight, cs)
	}
	if verbose {
		logger.Printf("add_weights: split list holds %d entries (capacity %d)", e.list.Len(), e.t)
	}
	return nil
}

// Splits returns the weight-descending, insertion-order-tie-broken split
// list accumulated by AddWeights.
func (e *Engine) Splits() []WeightedSplit {
	return e.list.Entries()
}
