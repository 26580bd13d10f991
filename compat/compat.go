// Package compat implements the strict and weak split-compatibility
// predicates, computed directly on color.Set bit operations with
// no tree structure required.
package compat

import "github.com/zwets/sans/color"

// Strict reports whether s is strictly compatible with every split in
// accepted: for each candidate, at least one of the four Venn cells
// s∩a, s∩¬a, ¬s∩a, ¬s∩¬a must be empty.
func Strict(s color.Set, accepted []color.Set) bool {
	for _, a := range accepted {
		if !strictPair(s, a) {
			return false
		}
	}
	return true
}

func strictPair(a, b color.Set) bool {
	notA := a.Complement()
	notB := b.Complement()
	return a.Intersect(b).PopCount() == 0 ||
		a.Intersect(notB).PopCount() == 0 ||
		notA.Intersect(b).PopCount() == 0 ||
		notA.Intersect(notB).PopCount() == 0
}

// Weakly reports whether s, together with every pair already in
// accepted, avoids forming a forbidden triple: for every two splits a, b
// already accepted, at least one of the three triple intersections
// s∩a∩b, s∩a∩¬b, s∩¬a∩b must be empty.
func Weakly(s color.Set, accepted []color.Set) bool {
	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			if !weaklyTriple(s, accepted[i], accepted[j]) {
				return false
			}
		}
	}
	return true
}

func weaklyTriple(s, a, b color.Set) bool {
	notA := a.Complement()
	notB := b.Complement()
	return s.Intersect(a).Intersect(b).PopCount() == 0 ||
		s.Intersect(a).Intersect(notB).PopCount() == 0 ||
		s.Intersect(notA).Intersect(b).PopCount() == 0
}
