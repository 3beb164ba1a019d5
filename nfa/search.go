package nfa

import (
	"github.com/grrex/grrex/internal/conv"
	"github.com/grrex/grrex/internal/sparse"
)

// record is a single candidate match in progress: score is the number of
// characters actually consumed along this path, and [start, end) is the
// substring it currently spans.
type record struct {
	start, end, score int
}

// recordSet holds at most one record per state, indexed by state index
// (0..L inclusive, L being the accepting state).
type recordSet struct {
	recs    []record
	present []bool
}

func newRecordSet(n int) *recordSet {
	return &recordSet{recs: make([]record, n), present: make([]bool, n)}
}

func (rs *recordSet) clear() {
	for i := range rs.present {
		rs.present[i] = false
	}
}

// place merges rec into rs at state: the incoming record wins if no
// record occupies state yet, if it scores higher, or — on a tied score —
// if it started earlier.
func (rs *recordSet) place(state int, rec record) {
	if !rs.present[state] ||
		rec.score > rs.recs[state].score ||
		(rec.score == rs.recs[state].score && rec.start < rs.recs[state].start) {
		rs.recs[state] = rec
		rs.present[state] = true
	}
}

// Search finds the highest-scoring substring of text that n matches,
// returning its [start, end) bounds. cursor reports where scanning
// stopped: the end of input, a line break, or the offending byte when a
// non-tolerant scan hits an unprintable one.
//
// In tolerant mode, an unprintable run is treated as a line break: any
// record that has already reached the accepting state survives across
// it (as the best candidate for its line), every other candidate is
// dropped, and scanning resumes past the run with a fresh START anchor.
func Search(n *NFA, text []byte, tolerant bool) (start, end, cursor int, err error) {
	if n == nil {
		return 0, 0, 0, ErrBadArgs
	}

	L := n.Length()
	cur := newRecordSet(L + 1)
	next := newRecordSet(L + 1)

	idx := 0
	atLineStart := true

	for idx < len(text) {
		c := text[idx]
		if c == '\r' || c == '\n' {
			cursor = idx
			return finishSearch(n, cur, cursor)
		}

		sym, ok := ClassifyByte(c)
		if !ok {
			if !tolerant {
				return 0, 0, idx, ErrBadData
			}
			cur.preserveAcceptOnly(n)
			idx = scanUnprintableRun(text, idx)
			atLineStart = true
			continue
		}

		flags := anchorFlags{start: atLineStart, end: isLineEnd(text, idx)}
		atLineStart = false

		next.clear()
		for s := 0; s <= L; s++ {
			if cur.present[s] {
				stepRecord(n, s, cur.recs[s], sym, flags, next, 0)
			}
		}
		stepRecord(n, 0, record{start: idx, end: idx, score: 0}, sym, flags, next, 0)

		cur, next = next, cur
		idx++
	}

	return finishSearch(n, cur, idx)
}

// isLineEnd reports whether position idx is the last consumable
// character of its line: either the last byte of text, or the next byte
// is unclassifiable.
func isLineEnd(text []byte, idx int) bool {
	if idx == len(text)-1 {
		return true
	}
	_, ok := ClassifyByte(text[idx+1])
	return !ok
}

// preserveAcceptOnly discards every in-flight candidate except one that
// has already reached the accepting state, per the tolerant-mode rule
// for crossing a line break.
func (rs *recordSet) preserveAcceptOnly(n *NFA) {
	accept := n.Accept()
	hadAccept := rs.present[accept]
	var acceptRec record
	if hadAccept {
		acceptRec = rs.recs[accept]
	}
	rs.clear()
	if hadAccept {
		rs.recs[accept] = acceptRec
		rs.present[accept] = true
	}
}

// finishSearch selects, among cur's live records, the best one whose
// state is the accepting state or can reach it via an anchor-free
// epsilon/lookahead path.
func finishSearch(n *NFA, cur *recordSet, cursor int) (start, end, cursorOut int, err error) {
	bestState := -1
	var best record
	visited := sparse.NewSparseSet(conv.IntToUint32(n.Length() + 1))

	for s := 0; s < len(cur.present); s++ {
		if !cur.present[s] {
			continue
		}
		visited.Clear()
		if s != n.Accept() && !canReachAccept(n, s, visited) {
			continue
		}
		rec := cur.recs[s]
		if bestState == -1 || rec.score > best.score || (rec.score == best.score && rec.start < best.start) {
			bestState, best = s, rec
		}
	}

	if bestState == -1 {
		return 0, 0, cursor, ErrNotFound
	}
	return best.start, best.end, cursor, nil
}

// stepRecord is the scored-search analogue of step: it advances rec
// through the epsilon closure of state under sym, placing every record
// it reaches into out. Lookahead transitions place a zero-width copy of
// rec (no score/end change); symbol-consuming transitions extend
// end/score by one; epsilon transitions recurse, gated by flags when
// they carry an anchor bit.
func stepRecord(n *NFA, state int, rec record, sym Symbol, flags anchorFlags, out *recordSet, depth int) {
	if depth > n.Length() {
		return
	}
	if state == n.Accept() {
		out.place(state, rec)
		return
	}

	for _, tr := range n.transitionsAt(state) {
		dst := state + tr.Motion
		switch {
		case tr.Symbols.Test(SymLookahead):
			if tr.Symbols.Test(sym) {
				out.place(dst, rec)
			}
		case tr.Symbols.Test(sym):
			out.place(dst, record{start: rec.start, end: rec.end + 1, score: rec.score + 1})
		case tr.Symbols.Test(SymEpsilon):
			if tr.Symbols.Test(SymStart) && !flags.start {
				continue
			}
			if tr.Symbols.Test(SymEnd) && !flags.end {
				continue
			}
			stepRecord(n, dst, rec, sym, flags, out, depth+1)
		}
	}
}
