// Package kmer implements the bit-packed, fixed-width encoding of a DNA
// k-mer: shift-in-base (left and right), reverse
// complement, equality, and hash, backed by a single machine word when
// k <= 32 and by a fixed-width limb array otherwise.  Canonicalisation
// (replacing a k-mer with the lesser of itself and its reverse
// complement) is performed by Window, which maintains both forms in
// parallel so canonicalising costs one comparison per shift.
package kmer

import (
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

// lcBit is the ASCII bit that distinguishes a lower case letter from its
// upper case form.
const lcBit = 0x20

// wideLimbs bounds the number of bases a KmerWide can address: 32 bases
// per 64-bit limb.
const wideLimbs = 8

// MaxK is the largest k-mer length supported.
const MaxK = wideLimbs * 32

// Code returns the 2-bit encoding of a DNA base (A=0, C=1, G=2, T=3),
// case-insensitive.  ok is false for anything outside ACGTacgt --
// ambiguity codes are handled by Expand, not Code.
func Code(base byte) (uint64, bool) {
	switch base | lcBit {
	case 'a':
		return 0, true
	case 'c':
		return 1, true
	case 'g':
		return 2, true
	case 't':
		return 3, true
	}
	return 0, false
}

// Base returns the upper case DNA symbol for a 2-bit code.
func Base(code uint64) byte {
	return "ACGT"[code&3]
}

// Complement returns the complementary base, case preserved.
func Complement(base byte) byte {
	code, ok := Code(base)
	if !ok {
		return base
	}
	c := Base(code ^ 3)
	if base&lcBit != 0 {
		c |= lcBit
	}
	return c
}

// Kmer is a length-k string over {A,C,G,T}, encoded 2 bits per base.
// Values are immutable: every mutating method returns a new Kmer.
type Kmer interface {
	K() int
	ShiftLeft(code uint64) Kmer
	ShiftRight(code uint64) Kmer
	ReverseComplement() Kmer
	Equal(other Kmer) bool
	Less(other Kmer) bool
	Hash() uint64
	String() string
}

// New returns the zero-valued k-mer (all A's) of length k, choosing the
// uint64 backend for k <= 32 and the limb-array backend otherwise.
func New(k int) (Kmer, error) {
	if k <= 0 {
		return nil, errors.Errorf("kmer: k must be positive, got %d", k)
	}
	if k > MaxK {
		return nil, errors.Errorf("kmer: k=%d exceeds supported maximum %d", k, MaxK)
	}
	if k <= 32 {
		return Kmer64{k: k}, nil
	}
	return KmerWide{k: k}, nil
}

// ---- Kmer64: k <= 32 ----

// Kmer64 is a k-mer of length <= 32, backed by one uint64.
type Kmer64 struct {
	k   int
	val uint64
}

func (k Kmer64) K() int { return k.k }

func (k Kmer64) mask() uint64 {
	if k.k == 32 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(2*k.k)) - 1
}

func (k Kmer64) ShiftLeft(code uint64) Kmer {
	k.val = (k.val<<2 | code) & k.mask()
	return k
}

func (k Kmer64) ShiftRight(code uint64) Kmer {
	shift := uint(2 * (k.k - 1))
	k.val = k.val>>2 | code<<shift
	return k
}

func (k Kmer64) ReverseComplement() Kmer {
	var out Kmer64
	out.k = k.k
	v := k.val
	for i := 0; i < k.k; i++ {
		digit := v & 3
		v >>= 2
		out.val = out.val<<2 | (digit ^ 3)
	}
	return out
}

func (k Kmer64) Equal(other Kmer) bool {
	o, ok := other.(Kmer64)
	return ok && o.k == k.k && o.val == k.val
}

func (k Kmer64) Less(other Kmer) bool {
	o := other.(Kmer64)
	return k.val < o.val
}

func (k Kmer64) Hash() uint64 {
	// The k-mer's bit pattern is itself the seed, nil data.
	return farm.Hash64WithSeed(nil, k.val)
}

func (k Kmer64) String() string {
	b := make([]byte, k.k)
	v := k.val
	for i := k.k - 1; i >= 0; i-- {
		b[i] = Base(v & 3)
		v >>= 2
	}
	return string(b)
}

// ---- KmerWide: k > 32 ----

// KmerWide is a k-mer of length > 32, backed by a fixed-size array of
// uint64 limbs.  limbs[0] holds the 32 most recently shifted-in bases
// (the least significant digits), limbs[1] the next 32, and so on.
type KmerWide struct {
	k   int
	val [wideLimbs]uint64
}

func (k KmerWide) K() int { return k.k }

func limbsFor(k int) int {
	return (k + 31) / 32
}

func (k *KmerWide) maskTop(nLimbs int) {
	topBits := uint(2*k.k - 64*(nLimbs-1))
	if topBits < 64 {
		k.val[nLimbs-1] &= (uint64(1) << topBits) - 1
	}
}

func (k KmerWide) ShiftLeft(code uint64) Kmer {
	nLimbs := limbsFor(k.k)
	carry := code
	for i := 0; i < nLimbs; i++ {
		next := k.val[i] >> 62
		k.val[i] = k.val[i]<<2 | carry
		carry = next
	}
	k.maskTop(nLimbs)
	return k
}

func (k KmerWide) ShiftRight(code uint64) Kmer {
	nLimbs := limbsFor(k.k)
	var carry uint64
	for i := nLimbs - 1; i >= 0; i-- {
		next := k.val[i] & 3
		k.val[i] = k.val[i]>>2 | carry<<62
		carry = next
	}
	topBits := uint(2*k.k - 64*(nLimbs-1))
	k.val[nLimbs-1] |= code << (topBits - 2)
	return k
}

// digitAt returns the 2-bit digit i positions up from the least
// significant (most recently shifted-in) digit.
func (k KmerWide) digitAt(i int) uint64 {
	return (k.val[i/32] >> uint(2*(i%32))) & 3
}

func (k *KmerWide) setDigit(i int, v uint64) {
	k.val[i/32] |= v << uint(2*(i%32))
}

func (k KmerWide) ReverseComplement() Kmer {
	out := KmerWide{k: k.k}
	for i := 0; i < k.k; i++ {
		d := k.digitAt(k.k - 1 - i)
		out.setDigit(i, d^3)
	}
	return out
}

func (k KmerWide) Equal(other Kmer) bool {
	o, ok := other.(KmerWide)
	return ok && o.k == k.k && o.val == k.val
}

func (k KmerWide) Less(other Kmer) bool {
	o := other.(KmerWide)
	for i := len(k.val) - 1; i >= 0; i-- {
		if k.val[i] != o.val[i] {
			return k.val[i] < o.val[i]
		}
	}
	return false
}

func (k KmerWide) Hash() uint64 {
	h := uint64(k.k)
	for _, w := range k.val {
		h = farm.Hash64WithSeed(nil, w^h)
	}
	return h
}

func (k KmerWide) String() string {
	var b strings.Builder
	for i := k.k - 1; i >= 0; i-- {
		b.WriteByte(Base(k.digitAt(i)))
	}
	return b.String()
}
