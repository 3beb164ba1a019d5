// Package literal provides types and operations for representing and
// manipulating literal byte prefixes extracted from grrex patterns.
//
// grrex's primary use of this package is multi-pattern dispatch: when
// several compiled NFAs are run over the same input by nfa.FirstMatch,
// an NFA whose pattern is a literal or an alternation of literals gets
// its own Aho-Corasick automaton over those literals, and is skipped
// without simulation when none of them occurs anywhere in the input.
package literal

// Literal is a literal byte sequence extracted from a grrex pattern.
type Literal struct {
	// Bytes is the literal byte sequence.
	Bytes []byte

	// Complete reports whether Bytes is itself a complete match, as
	// opposed to just a required prefix of one. ExtractPrefixes always
	// produces complete literals; the field exists so a future
	// non-prefix extractor can share this type without a breaking
	// change.
	Complete bool
}

// NewLiteral returns a Literal over b with the given completeness.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Seq is a sequence of alternative literals, e.g. the branches of a
// top-level alternation of literal patterns.
type Seq struct {
	literals []Literal
}

// NewSeq returns a Seq holding lits in order.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}
