package kmer

// Window maintains a rolling forward and reverse-complement pair of
// k-mers as bases are pushed, so canonicalisation -- picking the lesser
// of the two -- costs one comparison per shift.  It is the
// concrete-base counterpart to Expansion, which handles IUPAC ambiguity.
type Window struct {
	k        int
	fwd, rev Kmer
	filled   int
}

// NewWindow returns an empty window for k-mers of length k.
func NewWindow(k int) (*Window, error) {
	fwd, err := New(k)
	if err != nil {
		return nil, err
	}
	rev, err := New(k)
	if err != nil {
		return nil, err
	}
	return &Window{k: k, fwd: fwd, rev: rev}, nil
}

// K returns the window's k-mer length.
func (w *Window) K() int { return w.k }

// Reset clears the window, as if freshly constructed.  Called whenever
// an unrecognised base is scanned: unknown characters reset the window.
func (w *Window) Reset() {
	w.fwd, _ = New(w.k)
	w.rev, _ = New(w.k)
	w.filled = 0
}

// Push advances the window by one concrete base (A, C, G, or T, either
// case).  full reports whether the window now holds k valid bases; ok is
// false, and the window is reset, when base is not a concrete base.
func (w *Window) Push(base byte) (full, ok bool) {
	code, valid := Code(base)
	if !valid {
		w.Reset()
		return false, false
	}
	w.fwd = w.fwd.ShiftLeft(code)
	w.rev = w.rev.ShiftRight(code ^ 3)
	if w.filled < w.k {
		w.filled++
	}
	return w.filled == w.k, true
}

// Forward returns the window's current forward-strand k-mer.  Valid only
// once Push has reported full.
func (w *Window) Forward() Kmer { return w.fwd }

// ReverseComplement returns the window's current reverse-complement
// k-mer, maintained in parallel with Forward.
func (w *Window) ReverseComplement() Kmer { return w.rev }

// Canonical returns min(Forward(), ReverseComplement()).
func (w *Window) Canonical() Kmer {
	if w.rev.Less(w.fwd) {
		return w.rev
	}
	return w.fwd
}

// Clone returns an independent copy of the window, used by Expansion to
// fan a window out across an ambiguous position's concrete bases.
func (w *Window) Clone() *Window {
	c := *w
	return &c
}
