package nfa

// Symbol is an index into the transition alphabet. The alphabet is fixed
// at NumSymbols entries: the first five indices are meta-symbols that
// never correspond to an input byte, and the rest are printable ASCII
// shifted by a fixed offset.
type Symbol uint8

// Meta-symbols occupy the low end of the alphabet so the ASCII region
// below can never collide with them.
const (
	SymEpsilon   Symbol = iota // fires without consuming input
	SymStart                   // epsilon + start-of-line anchor
	SymEnd                     // epsilon + end-of-line anchor
	SymLookahead                // zero-width assertion on the next input symbol
	SymTab                     // literal tab

	numMeta = iota
)

// asciiOffset is subtracted from a printable ASCII byte to land it just
// past the meta-symbols: ' ' (0x20) maps to numMeta.
const asciiOffset = 0x20 - numMeta

// firstASCII and lastASCII bound the ASCII-mapped region of the alphabet.
const (
	firstASCII = Symbol(numMeta)
	lastASCII  = Symbol(0x7E - asciiOffset)

	// NumSymbols is the total size of the transition alphabet.
	NumSymbols = int(lastASCII) + 1
)

// ClassifyByte maps an input byte to its symbol. ok is false for any byte
// that is neither tab nor printable ASCII (0x20..0x7E); such bytes have
// no representation in the alphabet and callers must reject or skip them
// per the matching mode in use.
func ClassifyByte(c byte) (sym Symbol, ok bool) {
	if c == '\t' {
		return SymTab, true
	}
	if c >= 0x20 && c <= 0x7E {
		return Symbol(c - asciiOffset), true
	}
	return 0, false
}

// isPrintableOrTab reports whether c has a symbol in the alphabet.
func isPrintableOrTab(c byte) bool {
	_, ok := ClassifyByte(c)
	return ok
}

// symbolSetWords is the number of uint64 words backing a SymbolSet; 2
// words (128 bits) comfortably covers the ~100-symbol alphabet.
const symbolSetWords = 2

// SymbolSet is a fixed-size bitset over the transition alphabet, used as
// the "symbols" half of a Transition and as the scratch per-byte
// membership test during simulation.
type SymbolSet struct {
	bits [symbolSetWords]uint64
}

// Set marks sym as a member of the set.
func (s *SymbolSet) Set(sym Symbol) {
	s.bits[sym/64] |= 1 << (sym % 64)
}

// Clear removes sym from the set.
func (s *SymbolSet) Clear(sym Symbol) {
	s.bits[sym/64] &^= 1 << (sym % 64)
}

// Test reports whether sym is a member of the set.
func (s SymbolSet) Test(sym Symbol) bool {
	return s.bits[sym/64]&(1<<(sym%64)) != 0
}

// IsEmpty reports whether no symbol is set.
func (s SymbolSet) IsEmpty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Union returns the bitwise union of s and other.
func (s SymbolSet) Union(other SymbolSet) SymbolSet {
	var out SymbolSet
	for i := range out.bits {
		out.bits[i] = s.bits[i] | other.bits[i]
	}
	return out
}

// singleSymbolSet returns a SymbolSet containing only sym.
func singleSymbolSet(sym Symbol) SymbolSet {
	var s SymbolSet
	s.Set(sym)
	return s
}

// singleByteSet returns a SymbolSet matching exactly the given printable
// ASCII or tab byte. Panics if b has no symbol; callers must validate
// with isPrintableOrTab first.
func singleByteSet(b byte) SymbolSet {
	sym, ok := ClassifyByte(b)
	if !ok {
		panic("nfa: byte has no alphabet symbol")
	}
	return singleSymbolSet(sym)
}

// epsilonSet returns a SymbolSet with only SymEpsilon set, the bare
// unconditional epsilon transition used by alternation branch points and
// quantifier bypasses and loops.
func epsilonSet() SymbolSet {
	return singleSymbolSet(SymEpsilon)
}

// wildcardSet returns a SymbolSet matching every printable ASCII symbol.
// Tab is excluded: '.' matches the printable range only, not the tab
// meta-symbol.
func wildcardSet() SymbolSet {
	var s SymbolSet
	for sym := firstASCII; sym <= lastASCII; sym++ {
		s.Set(sym)
	}
	return s
}

// negateASCII inverts membership over the ASCII region only; the
// meta-symbol bits are left untouched (cleared), since a negated
// character class still never matches on anchors, epsilon, or lookahead.
func negateASCII(s SymbolSet) SymbolSet {
	var out SymbolSet
	for sym := firstASCII; sym <= lastASCII; sym++ {
		if !s.Test(sym) {
			out.Set(sym)
		}
	}
	return out
}

// sameClassBlock reports whether lo and hi both fall in the same
// case/digit block (A-Z, a-z, 0-9), a precondition for a valid character
// class range.
func sameClassBlock(lo, hi byte) bool {
	switch {
	case lo >= 'A' && lo <= 'Z':
		return hi >= 'A' && hi <= 'Z'
	case lo >= 'a' && lo <= 'z':
		return hi >= 'a' && hi <= 'z'
	case lo >= '0' && lo <= '9':
		return hi >= '0' && hi <= '9'
	default:
		return false
	}
}
