package nfa

import (
	"github.com/grrex/grrex/internal/conv"
	"github.com/grrex/grrex/internal/sparse"
)

// bitSet is a dense bitset over state indices 0..L, used by the exact
// match simulation for its current and next active-state sets.
type bitSet struct {
	bits []uint64
}

func newBitSet(n int) bitSet {
	return bitSet{bits: make([]uint64, (n/64)+1)}
}

func (b bitSet) set(i int)        { b.bits[i/64] |= 1 << uint(i%64) }
func (b bitSet) test(i int) bool  { return b.bits[i/64]&(1<<uint(i%64)) != 0 }
func (b bitSet) clearAll() {
	for i := range b.bits {
		b.bits[i] = 0
	}
}
func (b bitSet) isEmpty() bool {
	for _, w := range b.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Match reports whether text, taken as a whole, is accepted by n. Every
// byte of text must be printable ASCII or tab; any other byte is
// ErrBadData.
func Match(n *NFA, text []byte) (bool, error) {
	if n == nil {
		return false, ErrBadArgs
	}

	L := n.Length()
	cur := newBitSet(L + 1)
	next := newBitSet(L + 1)
	cur.set(0)

	for i, c := range text {
		sym, ok := ClassifyByte(c)
		if !ok {
			return false, ErrBadData
		}

		next.clearAll()
		flags := anchorFlags{start: i == 0, end: i == len(text)-1}
		for s := 0; s <= L; s++ {
			if cur.test(s) {
				step(n, s, sym, flags, next, 0)
			}
		}
		if next.isEmpty() {
			return false, nil
		}
		cur, next = next, cur
	}

	visited := sparse.NewSparseSet(conv.IntToUint32(L + 1))
	for s := 0; s <= L; s++ {
		if cur.test(s) {
			visited.Clear()
			if canReachAccept(n, s, visited) {
				return true, nil
			}
		}
	}
	return false, nil
}

// anchorFlags carries the position-dependent conditions under which
// START/END-tagged epsilon transitions may fire.
type anchorFlags struct {
	start bool
	end   bool
}

// step runs the epsilon closure of state under symbol sym, writing every
// state newly reachable by consuming sym into out. depth bounds the
// epsilon recursion to the automaton's own size, since a well-formed NFA
// can never need to traverse more epsilon hops than it has states.
func step(n *NFA, state int, sym Symbol, flags anchorFlags, out bitSet, depth int) {
	if state == n.Accept() || depth > n.Length() {
		return
	}
	for _, tr := range n.transitionsAt(state) {
		dst := state + tr.Motion
		switch {
		case tr.Symbols.Test(SymLookahead):
			// A lookahead mid-string is a dead end for exact match: it
			// asserts on the next byte but this call has already
			// committed to consuming sym via some other transition, and
			// a lookahead never itself advances the state.
		case tr.Symbols.Test(sym):
			out.set(dst)
		case tr.Symbols.Test(SymEpsilon):
			if tr.Symbols.Test(SymStart) && !flags.start {
				continue
			}
			if tr.Symbols.Test(SymEnd) && !flags.end {
				continue
			}
			step(n, dst, sym, flags, out, depth+1)
		}
	}
}

// canReachAccept reports whether the accepting state is reachable from
// state via epsilon and/or lookahead transitions alone, without
// consuming further input. visited prevents infinite loops through
// epsilon cycles (e.g. the back-edge of a '+' or '*' expansion).
func canReachAccept(n *NFA, state int, visited *sparse.SparseSet) bool {
	if state == n.Accept() {
		return true
	}
	if visited.Contains(conv.IntToUint32(state)) {
		return false
	}
	visited.Insert(conv.IntToUint32(state))

	for _, tr := range n.transitionsAt(state) {
		if !tr.Symbols.Test(SymEpsilon) && !tr.Symbols.Test(SymLookahead) {
			continue
		}
		dst := state + tr.Motion
		if canReachAccept(n, dst, visited) {
			return true
		}
	}
	return false
}
