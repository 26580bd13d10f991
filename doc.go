// Package sans computes a weighted collection of splits over a set of
// input genomes by indexing k-mers across all inputs, then filters that
// collection into one or more phylogenetic trees expressed in Newick
// form.
//
// The four leaf packages kmer, color, compat, and tree implement the
// bit-level data types and algorithms; splitgraph and filter compose them
// into the ingestion/weighting/filtering pipeline; this package wires the
// pipeline into the public contract: Init, AddKmers, AddWeights,
// FilterStrict, FilterWeakly, FilterNTree.
package sans
