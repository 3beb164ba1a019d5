package nfa

import (
	"github.com/coregx/ahocorasick"

	"github.com/grrex/grrex/internal/conv"
	"github.com/grrex/grrex/internal/sparse"
	"github.com/grrex/grrex/literal"
)

// FirstMatch runs every NFA in nfas over a shared prefix of text in
// parallel and reports which one scores highest once all of them have
// either died or settled at their own accepting state. processed is the
// number of input bytes actually consumed; score is the winning NFA's
// consumed-character count along its best accepting path.
func FirstMatch(nfas []*NFA, text []byte) (index, score, processed int, err error) {
	if len(nfas) == 0 {
		return 0, 0, 0, ErrBadArgs
	}

	live := prefilterCandidates(nfas, text)

	cur := make([]*recordSet, len(nfas))
	next := make([]*recordSet, len(nfas))
	for i, n := range nfas {
		if n == nil {
			return 0, 0, 0, ErrBadArgs
		}
		cur[i] = newRecordSet(n.Length() + 1)
		next[i] = newRecordSet(n.Length() + 1)
	}

	idx := 0
	for idx < len(text) {
		c := text[idx]
		if !isPrintableOrTab(c) {
			break
		}
		sym, _ := ClassifyByte(c)
		flags := anchorFlags{start: idx == 0, end: isLineEnd(text, idx)}

		anyLive := false
		for i, n := range nfas {
			if !live[i] {
				continue
			}
			next[i].clear()
			for s := 0; s <= n.Length(); s++ {
				if cur[i].present[s] {
					stepRecord(n, s, cur[i].recs[s], sym, flags, next[i], 0)
				}
			}
			stepRecord(n, 0, record{start: idx, end: idx, score: 0}, sym, flags, next[i], 0)

			for s := 0; s < n.Length(); s++ {
				if next[i].present[s] {
					anyLive = true
				}
			}
		}
		cur, next = next, cur
		idx++
		if !anyLive {
			break
		}
	}

	index, score = -1, 0
	for i, n := range nfas {
		if !live[i] {
			continue
		}
		visited := sparse.NewSparseSet(conv.IntToUint32(n.Length() + 1))
		for s := 0; s <= n.Length(); s++ {
			if !cur[i].present[s] {
				continue
			}
			visited.Clear()
			if s != n.Accept() && !canReachAccept(n, s, visited) {
				continue
			}
			rec := cur[i].recs[s]
			if index == -1 || rec.score > score {
				index, score = i, rec.score
			}
		}
	}

	if index == -1 {
		return 0, 0, idx, ErrNotFound
	}
	return index, score, idx, nil
}

// prefilterCandidates narrows the set of NFAs worth simulating: an NFA
// whose pattern reduces to a plain literal (or a top-level alternation
// of literals, per literal.ExtractPrefixes) can only match if one of
// those literals occurs somewhere in text. Each such NFA gets its own
// single-pattern-set automaton so a match result is unambiguous; NFAs
// whose pattern isn't a pure literal shape are always kept, since
// nothing can be concluded about them without running the simulation.
// Any failure to build an automaton keeps that NFA live.
func prefilterCandidates(nfas []*NFA, text []byte) []bool {
	live := make([]bool, len(nfas))
	for i := range live {
		live[i] = true
	}

	for i, n := range nfas {
		if n == nil {
			continue
		}
		seq := literal.ExtractPrefixes([]byte(n.Pattern()))
		if seq.IsEmpty() {
			continue
		}

		builder := ahocorasick.NewBuilder()
		for j := 0; j < seq.Len(); j++ {
			builder.AddPattern(seq.Get(j).Bytes)
		}
		automaton, err := builder.Build()
		if err != nil {
			continue
		}

		live[i] = automaton.IsMatch(text)
	}
	return live
}
