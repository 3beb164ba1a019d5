package nfa

// This file holds the low-level fragment operations the compiler stitches
// together: one-node atoms, concatenation, alternation (disjoin), and
// quantifier desugaring. A "fragment" is just an *NFA before its pattern
// string is attached; CompileWithConfig is the only place that happens.
//
// Every fragment invariant from the specification holds by construction
// here: the initial state is always index 0, motions stay within
// [0, length] relative to their host, and every transition with a
// nonzero symbol set keeps at least one bit set.

// emptyFrag returns the fragment that matches only the empty string:
// zero states, whose start and accept coincide at index 0.
// Concatenating it is a no-op; it's what an empty group `()` compiles to.
func emptyFrag() *NFA {
	return &NFA{}
}

// newSymbolFrag returns a one-node fragment that consumes a single input
// symbol matching any bit in set and advances to its own accept state.
func newSymbolFrag(set SymbolSet) *NFA {
	return &NFA{nodes: []node{{
		transitions: [maxTransitions]Transition{{Motion: 1, Symbols: set}},
	}}}
}

// newAnchorFrag returns a one-node zero-width fragment for '^' or '$':
// an epsilon transition additionally tagged with the anchor bit, so the
// runtime only takes it when the corresponding position flag holds.
func newAnchorFrag(anchor Symbol) *NFA {
	var set SymbolSet
	set.Set(SymEpsilon)
	set.Set(anchor)
	return newSymbolFrag(set)
}

// newWildcardFrag returns a one-node fragment for '.', matching any
// printable ASCII symbol.
func newWildcardFrag() *NFA {
	return newSymbolFrag(wildcardSet())
}

// markLookahead converts a freshly parsed one-node literal/class fragment
// into a zero-width lookahead assertion: the LOOKAHEAD bit is set and any
// EPSILON bit is cleared, per the trailing `/X` construct.
func markLookahead(n *NFA) *NFA {
	t := &n.nodes[0].transitions[0]
	t.Symbols.Clear(SymEpsilon)
	t.Symbols.Set(SymLookahead)
	return n
}

// concat appends b's states after a's. Because every motion is a delta
// relative to its own host, no motion in either fragment needs rewriting:
// a transition in A that targeted A's old accept state (host+motion ==
// len(A)) now targets index len(A), which is exactly where B's first
// node now lives.
func concat(a, b *NFA) *NFA {
	if len(b.nodes) == 0 {
		return a
	}
	if len(a.nodes) == 0 {
		return b
	}
	nodes := make([]node, 0, len(a.nodes)+len(b.nodes))
	nodes = append(nodes, a.nodes...)
	nodes = append(nodes, b.nodes...)
	return &NFA{nodes: nodes}
}

// disjoin builds A|B: a new branch state is prepended with two epsilon
// transitions, one into (shifted) A and one into B. Every transition
// inside A that pointed at A's old accept state is widened by len(B) so
// it now reaches the combined accept state past B, instead of stopping
// short at the boundary between A and B.
func disjoin(a, b *NFA) *NFA {
	la, lb := len(a.nodes), len(b.nodes)

	nodes := make([]node, 0, 1+la+lb)
	nodes = append(nodes, node{
		transitions: [maxTransitions]Transition{
			{Motion: 1, Symbols: epsilonSet()},
			{Motion: 1 + la, Symbols: epsilonSet()},
		},
		hasSecond: true,
	})

	shiftedA := make([]node, la)
	copy(shiftedA, a.nodes)
	for i := range shiftedA {
		n := shiftedA[i].numTransitions()
		for k := 0; k < n; k++ {
			t := &shiftedA[i].transitions[k]
			if i+t.Motion == la {
				t.Motion += lb
			}
		}
	}
	nodes = append(nodes, shiftedA...)
	nodes = append(nodes, b.nodes...)

	return &NFA{nodes: nodes}
}

// applyOptional desugars a trailing '?': the fragment becomes
// zero-or-one. When the fragment's root has only one live transition,
// the bypass is folded directly into it (no new state); otherwise a new
// branch state is prepended and the fragment shifts by one.
func applyOptional(n *NFA) *NFA {
	l := len(n.nodes)
	if l == 0 {
		return n
	}

	root := &n.nodes[0]
	if !root.hasSecond {
		root.transitions[1] = Transition{Motion: l, Symbols: epsilonSet()}
		root.hasSecond = true
		return n
	}

	nodes := make([]node, 0, l+1)
	nodes = append(nodes, node{
		transitions: [maxTransitions]Transition{
			{Motion: 1, Symbols: epsilonSet()},
			{Motion: l + 1, Symbols: epsilonSet()},
		},
		hasSecond: true,
	})
	nodes = append(nodes, n.nodes...)
	return &NFA{nodes: nodes}
}

// applyPlus desugars a trailing '+': one trailing state is appended with
// two epsilon transitions, one looping back to the fragment's root and
// one continuing on to the (now one state further) accept.
func applyPlus(n *NFA) *NFA {
	l := len(n.nodes)
	nodes := make([]node, 0, l+1)
	nodes = append(nodes, n.nodes...)
	nodes = append(nodes, node{
		transitions: [maxTransitions]Transition{
			{Motion: -l, Symbols: epsilonSet()},
			{Motion: 1, Symbols: epsilonSet()},
		},
		hasSecond: true,
	})
	return &NFA{nodes: nodes}
}

// applyStar desugars a trailing '*' as '+' followed by '?': zero-or-more.
func applyStar(n *NFA) *NFA {
	return applyOptional(applyPlus(n))
}

// applyBrace desugars `{count}`: the fragment's states are copied
// end-to-end count times. This is a pure copy, not a rewrite, because
// every motion is a delta relative to its own host and is unaffected by
// however many copies of the fragment precede it.
func applyBrace(n *NFA, count int) *NFA {
	if count == 1 {
		return n
	}
	l := len(n.nodes)
	nodes := make([]node, 0, l*count)
	for i := 0; i < count; i++ {
		nodes = append(nodes, n.nodes...)
	}
	return &NFA{nodes: nodes}
}
