// Package color implements bit-packed sets over the input genomes of a
// split graph run.  A color set is a subset of {0, ..., N-1} where N is
// the number of inputs.  Two backends exist, chosen by N at construction
// time: Set64 for N <= 64, backed by a single uint64, and SetWide for
// larger N, backed by a fixed-size array of uint64 limbs.  Both satisfy
// the same Set interface so callers never branch on which is in use.
package color

import (
	"fmt"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

// wideLimbs bounds the number of genomes a SetWide can address.
const (
	wideLimbs = 16
	wideBits  = wideLimbs * 64
)

// MaxN is the largest number of inputs a color set can represent.
const MaxN = wideBits

// Set is a subset of {0, ..., N-1}, the capability set named in the
// design notes: set/test/clear, complement, union, intersection,
// population count, equality, hash, and a total order used for split
// normalisation.
type Set interface {
	N() int
	Set(i int) Set
	Clear(i int) Set
	Test(i int) bool
	Complement() Set
	Union(other Set) Set
	Intersect(other Set) Set
	PopCount() int
	Equal(other Set) bool
	Less(other Set) bool
	Hash() uint64
	String() string
}

// New returns the empty color set over N inputs, choosing the uint64
// backend for N <= 64 and the wide backend otherwise.
func New(n int) (Set, error) {
	if n <= 0 {
		return nil, errors.Errorf("color: N must be positive, got %d", n)
	}
	if n > MaxN {
		return nil, errors.Errorf("color: N=%d exceeds supported maximum %d", n, MaxN)
	}
	if n <= 64 {
		return Set64{n: n}, nil
	}
	return SetWide{n: n}, nil
}

// Full returns the color set with every input present.
func Full(n int) (Set, error) {
	s, err := New(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		s = s.Set(i)
	}
	return s, nil
}

// Normalize returns min(s, complement(s)) under s.Less, the normalised
// split color: a split is identified by whichever side is smaller.
func Normalize(s Set) Set {
	c := s.Complement()
	if c.Less(s) {
		return c
	}
	return s
}

// IsTrivial reports whether s is empty or full, i.e. not a genuine split.
func IsTrivial(s Set) bool {
	return s.PopCount() == 0 || s.PopCount() == s.N()
}

// ---- Set64: N <= 64 ----

// Set64 is a color set over at most 64 inputs, backed by one uint64.
type Set64 struct {
	n    int
	bits uint64
}

func (s Set64) mask() uint64 {
	if s.n == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(s.n)) - 1
}

func (s Set64) N() int { return s.n }

func (s Set64) Set(i int) Set {
	s.bits |= uint64(1) << uint(i)
	return s
}

func (s Set64) Clear(i int) Set {
	s.bits &^= uint64(1) << uint(i)
	return s
}

func (s Set64) Test(i int) bool {
	return s.bits&(uint64(1)<<uint(i)) != 0
}

func (s Set64) Complement() Set {
	return Set64{n: s.n, bits: ^s.bits & s.mask()}
}

func (s Set64) Union(other Set) Set {
	o := other.(Set64)
	return Set64{n: s.n, bits: s.bits | o.bits}
}

func (s Set64) Intersect(other Set) Set {
	o := other.(Set64)
	return Set64{n: s.n, bits: s.bits & o.bits}
}

func (s Set64) PopCount() int {
	return popcount64(s.bits)
}

func (s Set64) Equal(other Set) bool {
	o, ok := other.(Set64)
	return ok && o.n == s.n && o.bits == s.bits
}

// Less orders sets lexicographically with input 0 most significant: the
// lowest-numbered input on which the two sets differ decides, and the
// set lacking that input sorts first.  A set and its complement always
// differ on input 0, so the smaller of the two is the one with bit 0
// unset -- the normalisation rule of the data model.
func (s Set64) Less(other Set) bool {
	o := other.(Set64)
	diff := s.bits ^ o.bits
	if diff == 0 {
		return false
	}
	return s.bits&(diff&-diff) == 0
}

func (s Set64) Hash() uint64 {
	// The set's bit pattern, mixed with N, is itself the seed, nil data.
	return farm.Hash64WithSeed(nil, s.bits^uint64(s.n))
}

func (s Set64) String() string {
	return bitString(s)
}

// ---- SetWide: N > 64 ----

// SetWide is a color set over more than 64 inputs, backed by a fixed-size
// array of uint64 limbs.  limbs[0] holds inputs [0,64), limbs[1] holds
// [64,128), and so on.
type SetWide struct {
	n     int
	limbs [wideLimbs]uint64
}

func (s SetWide) N() int { return s.n }

func (s SetWide) Set(i int) Set {
	s.limbs[i/64] |= uint64(1) << uint(i%64)
	return s
}

func (s SetWide) Clear(i int) Set {
	s.limbs[i/64] &^= uint64(1) << uint(i%64)
	return s
}

func (s SetWide) Test(i int) bool {
	return s.limbs[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func (s SetWide) Complement() Set {
	var out SetWide
	out.n = s.n
	for i := range s.limbs {
		out.limbs[i] = ^s.limbs[i]
	}
	out.maskTop()
	return out
}

// maskTop clears any bits beyond N in the top limb in use.
func (s *SetWide) maskTop() {
	top := (s.n - 1) / 64
	rem := s.n - top*64
	if rem < 64 {
		s.limbs[top] &= (uint64(1) << uint(rem)) - 1
	}
	for i := top + 1; i < wideLimbs; i++ {
		s.limbs[i] = 0
	}
}

func (s SetWide) Union(other Set) Set {
	o := other.(SetWide)
	var out SetWide
	out.n = s.n
	for i := range s.limbs {
		out.limbs[i] = s.limbs[i] | o.limbs[i]
	}
	return out
}

func (s SetWide) Intersect(other Set) Set {
	o := other.(SetWide)
	var out SetWide
	out.n = s.n
	for i := range s.limbs {
		out.limbs[i] = s.limbs[i] & o.limbs[i]
	}
	return out
}

func (s SetWide) PopCount() int {
	n := 0
	for _, w := range s.limbs {
		n += popcount64(w)
	}
	return n
}

func (s SetWide) Equal(other Set) bool {
	o, ok := other.(SetWide)
	return ok && o.n == s.n && o.limbs == s.limbs
}

// Less compares from limb 0 upward, mirroring Set64's input-0-first
// ordering.
func (s SetWide) Less(other Set) bool {
	o := other.(SetWide)
	for i := 0; i < len(s.limbs); i++ {
		if diff := s.limbs[i] ^ o.limbs[i]; diff != 0 {
			return s.limbs[i]&(diff&-diff) == 0
		}
	}
	return false
}

func (s SetWide) Hash() uint64 {
	h := uint64(s.n)
	for _, w := range s.limbs {
		h = farm.Hash64WithSeed(nil, w^h)
	}
	return h
}

func (s SetWide) String() string {
	return bitString(s)
}

func popcount64(w uint64) int {
	// Kernighan's bit-counting loop, no dependency on math/bits needed
	// beyond what the standard library already gives us for free; kept
	// explicit since color sets are on the hot path of add_weights.
	n := 0
	for w != 0 {
		w &= w - 1
		n++
	}
	return n
}

func bitString(s Set) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i := 0; i < s.N(); i++ {
		if s.Test(i) {
			if !first {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", i)
			first = false
		}
	}
	b.WriteByte('}')
	return b.String()
}
