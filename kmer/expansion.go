package kmer

// Expansion is the bounded scratch set of concrete k-mer windows alive
// while scanning a DNA string that may contain IUPAC ambiguity codes.
// At each new position the running fan-out product ("the multiplicity")
// is multiplied by the new symbol's fan-out; if that would exceed the
// caller-supplied cap max_iupac, the whole window is aborted (reset)
// rather than partially expanded -- ambiguous windows that don't fit the
// budget are dropped, just like an unknown base.  The cap is per
// window: a symbol's factor is divided back out once it slides k
// positions into the past, and windows that become identical when an
// ambiguous position leaves are merged.
type Expansion struct {
	k       int
	maxMult uint
	windows []*Window
	factors []uint // fan-out of each symbol currently in the window
	product uint
}

// NewExpansion returns an empty expansion for k-mers of length k, capped
// at maxMult concrete k-mers per window.  maxMult of 0 means no
// ambiguity is tolerated at all: any ambiguous symbol drops the window,
// the same treatment as an unknown base.
func NewExpansion(k int, maxMult uint) (*Expansion, error) {
	w, err := NewWindow(k)
	if err != nil {
		return nil, err
	}
	return &Expansion{k: k, maxMult: maxMult, windows: []*Window{w}, product: 1}, nil
}

// reset collapses the expansion back to a single empty window.
func (e *Expansion) reset() {
	w, _ := NewWindow(e.k)
	e.windows = []*Window{w}
	e.factors = nil
	e.product = 1
}

// Push advances every live window by the concrete expansions of sym.
// full reports whether every live window now holds k valid bases. ok is
// false only when sym is outside the IUPAC DNA alphabet entirely, in
// which case the expansion is reset exactly like Window.Push would be.
func (e *Expansion) Push(sym byte) (full, ok bool) {
	bases, recognised := Expand(sym)
	if !recognised {
		e.reset()
		return false, false
	}
	// The oldest symbol's fan-out leaves the window before the new
	// symbol's is charged against the cap.
	if len(e.factors) == e.k {
		e.product /= e.factors[0]
		e.factors = e.factors[1:]
	}
	fan := uint(len(bases))
	if fan > 1 {
		if e.maxMult == 0 || e.product*fan > e.maxMult {
			e.reset()
			return false, true
		}
	}
	e.product *= fan
	e.factors = append(e.factors, fan)

	next := make([]*Window, 0, len(e.windows)*len(bases))
	full = true
	for _, w := range e.windows {
		for _, b := range bases {
			nw := w.Clone()
			f, _ := nw.Push(b)
			full = full && f
			next = append(next, nw)
		}
	}
	if len(next) > 1 {
		// Windows differing only in a base that has slid out now hold
		// the same k-mer; keep the first of each.
		seen := make(map[Kmer]bool, len(next))
		uniq := next[:0]
		for _, w := range next {
			f := w.Forward()
			if !seen[f] {
				seen[f] = true
				uniq = append(uniq, w)
			}
		}
		next = uniq
	}
	e.windows = next
	return full, true
}

// Windows returns the live concrete k-mer windows and the multiplicity
// (fan-out product) each window's weight contribution is divided by:
// each emitted k-mer counts 1/product toward its color's total.
func (e *Expansion) Windows() ([]*Window, uint) {
	return e.windows, e.product
}

// Reset clears the expansion, as if freshly constructed.
func (e *Expansion) Reset() {
	e.reset()
}
