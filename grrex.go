// Package grrex is a small regular-expression engine over printable ASCII
// plus tab: grouping, alternation, concatenation, quantifiers (?, +, *,
// {n}), character classes, a wildcard, start/end-of-line anchors, and a
// trailing lookahead assertion. It compiles patterns to a Thompson-style
// NFA (see the nfa subpackage) and exposes three operations: exact
// matching, tolerant scored substring search, and multi-pattern
// first-match selection.
//
// Unicode, capture groups, backreferences, and PCRE/POSIX parity are
// explicitly out of scope; see nfa.Compile's documentation for the exact
// grammar.
package grrex

import (
	"github.com/grrex/grrex/nfa"
)

// Regex is a compiled pattern, safe for concurrent use by multiple
// goroutines: every match/search call allocates its own scratch state.
type Regex struct {
	n *nfa.NFA
}

// Compile compiles pattern into a Regex.
func Compile(pattern string) (*Regex, error) {
	n, err := nfa.Compile([]byte(pattern))
	if err != nil {
		return nil, err
	}
	return &Regex{n: n}, nil
}

// CompileWithConfig is Compile with an explicit state budget.
func CompileWithConfig(pattern string, config nfa.Config) (*Regex, error) {
	n, err := nfa.CompileWithConfig([]byte(pattern), config)
	if err != nil {
		return nil, err
	}
	return &Regex{n: n}, nil
}

// MustCompile is Compile, panicking if pattern fails to compile. Intended
// for patterns known to be valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("grrex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// Match reports whether b, taken as a whole, matches the pattern.
func (r *Regex) Match(b []byte) (bool, error) {
	return nfa.Match(r.n, b)
}

// MatchString is Match for a string argument.
func (r *Regex) MatchString(s string) (bool, error) {
	return r.Match([]byte(s))
}

// Search finds the highest-scoring substring of b that the pattern
// matches, returning its [start, end) bounds. cursor reports where
// scanning stopped. In tolerant mode, runs of unprintable bytes are
// treated as line breaks rather than errors.
func (r *Regex) Search(b []byte, tolerant bool) (start, end, cursor int, err error) {
	return nfa.Search(r.n, b, tolerant)
}

// SearchString is Search for a string argument.
func (r *Regex) SearchString(s string, tolerant bool) (start, end, cursor int, err error) {
	return r.Search([]byte(s), tolerant)
}

// String returns the pattern's original source text.
func (r *Regex) String() string {
	return r.n.Pattern()
}

// FirstMatch runs candidates over a shared prefix of b in parallel and
// reports which one scores highest. See nfa.FirstMatch for the exact
// stopping rule.
func FirstMatch(candidates []*Regex, b []byte) (index, score, processed int, err error) {
	nfas := make([]*nfa.NFA, len(candidates))
	for i, c := range candidates {
		nfas[i] = c.n
	}
	return nfa.FirstMatch(nfas, b)
}
