package splitgraph

import "github.com/zwets/sans/color"

// WeightedSplit is one entry of a SplitList: a normalised split color and
// the weight it was offered with.
type WeightedSplit struct {
	Weight float64
	Color  color.Set
}

// SplitList is a bounded multimap of splits keyed by weight, descending,
// with ties broken by insertion order. Backed by a plain ordered slice rather than a
// heap: capacity t is small relative to candidate counts in the intended
// use, so insertion-sort-on-offer is simpler and keeps the tie-break rule
// (stable order among equal weights) trivially correct.
type SplitList struct {
	capacity int
	entries  []WeightedSplit
}

// NewSplitList returns an empty list with the given capacity.
func NewSplitList(capacity int) *SplitList {
	return &SplitList{capacity: capacity}
}

// Len returns the number of entries currently held.
func (l *SplitList) Len() int { return len(l.entries) }

// Offer inserts (weight, c) in weight-descending order, breaking ties by
// insertion order (a later offer of equal weight sorts after an earlier
// one). If the list is at capacity, the lowest-weight entry is silently
// evicted; capacity exhaustion is not an error.
func (l *SplitList) Offer(weight float64, c color.Set) {
	pos := len(l.entries)
	for i, e := range l.entries {
		if weight > e.Weight {
			pos = i
			break
		}
	}
	l.entries = append(l.entries, WeightedSplit{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = WeightedSplit{Weight: weight, Color: c}

	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Entries returns the list's contents in descending-weight order. The
// returned slice is owned by the caller; the list itself is read-only
// once AddWeights has populated it.
func (l *SplitList) Entries() []WeightedSplit {
	out := make([]WeightedSplit, len(l.entries))
	copy(out, l.entries)
	return out
}
