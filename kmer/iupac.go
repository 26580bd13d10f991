package kmer

// iupacExpansion lists the concrete bases each upper-case IUPAC DNA
// symbol stands for.
var iupacExpansion = map[byte][]byte{
	'A': {'A'},
	'C': {'C'},
	'G': {'G'},
	'T': {'T'},
	'R': {'A', 'G'},
	'Y': {'C', 'T'},
	'S': {'G', 'C'},
	'W': {'A', 'T'},
	'K': {'G', 'T'},
	'M': {'A', 'C'},
	'B': {'C', 'G', 'T'},
	'D': {'A', 'G', 'T'},
	'H': {'A', 'C', 'T'},
	'V': {'A', 'C', 'G'},
	'N': {'A', 'C', 'G', 'T'},
}

// Expand returns the concrete bases an IUPAC DNA symbol stands for, case
// preserved relative to sym.  ok is false for a symbol outside the
// IUPAC DNA alphabet (ACGTRYSWKMBDHVN, upper or lower case), in which
// case the caller should treat the position as an unknown base.
func Expand(sym byte) (bases []byte, ok bool) {
	upper := sym &^ lcBit
	exp, found := iupacExpansion[upper]
	if !found {
		return nil, false
	}
	if sym&lcBit == 0 {
		return exp, true
	}
	lower := make([]byte, len(exp))
	for i, b := range exp {
		lower[i] = b | lcBit
	}
	return lower, true
}

// Fanout returns the number of concrete bases an IUPAC symbol expands
// to, or 0 if sym is not in the IUPAC DNA alphabet.
func Fanout(sym byte) int {
	if exp, ok := iupacExpansion[sym&^lcBit]; ok {
		return len(exp)
	}
	return 0
}
