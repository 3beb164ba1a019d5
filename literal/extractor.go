package literal

// grrex patterns that are nothing but literal characters (and the limited
// escapes the compiler treats as literal) joined by top-level '|' are
// common in keyword-list workloads (log-level tags, protocol verbs,
// status words). ExtractPrefixes recognizes exactly that shape and
// returns the set of literal alternatives so callers can prefilter with
// an Aho-Corasick automaton instead of running the full NFA.
//
// Anything else — a wildcard, a class, a quantifier, a group, an anchor,
// or a trailing lookahead — makes the pattern ineligible and
// ExtractPrefixes returns an empty, non-nil Seq. This is intentionally
// conservative: a false negative just forgoes the prefilter, a false
// positive would silently change match semantics.
func ExtractPrefixes(pattern []byte) *Seq {
	if len(pattern) == 0 {
		return NewSeq()
	}

	var lits []Literal
	var cur []byte

	flush := func() bool {
		if len(cur) == 0 {
			return false
		}
		lits = append(lits, NewLiteral(append([]byte(nil), cur...), true))
		cur = cur[:0]
		return true
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '|':
			if !flush() {
				return NewSeq()
			}
		case '\\':
			i++
			if i >= len(pattern) {
				return NewSeq()
			}
			lit, ok := literalEscape(pattern[i])
			if !ok {
				return NewSeq()
			}
			cur = append(cur, lit)
		case '.', '^', '$', '?', '+', '*', '{', '[', '(', ')', '/':
			return NewSeq()
		default:
			if c < 0x20 || c > 0x7E {
				return NewSeq()
			}
			cur = append(cur, c)
		}
	}
	if !flush() {
		return NewSeq()
	}

	return NewSeq(lits...)
}

// literalEscape reports the literal byte produced by a backslash escape
// that the compiler treats as a plain character, mirroring the escapes
// handled in nfa.Compile's literal path (\t and metacharacter escapes).
func literalEscape(c byte) (byte, bool) {
	switch c {
	case 't':
		return '\t', true
	case '\\', '|', '.', '^', '$', '?', '+', '*', '{', '}', '[', ']', '(', ')', '/':
		return c, true
	default:
		return 0, false
	}
}
