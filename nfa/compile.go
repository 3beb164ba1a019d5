package nfa

import (
	"strconv"

	"github.com/projectdiscovery/gologger"
)

// Config configures compilation. The zero value is the default
// configuration: no state budget beyond MaxStates' default.
type Config struct {
	// MaxStates caps the number of states a compiled NFA may hold. Zero
	// selects DefaultMaxStates.
	MaxStates int
}

// DefaultMaxStates is the state budget applied when Config.MaxStates is
// left at zero, generous enough for any pattern this grammar can express
// short of a pathological brace count.
const DefaultMaxStates = 1 << 16

// maxBraceCount bounds a single `{n}` so that an oversized brace count
// fails fast with ErrTooLong instead of building a very
// large NFA one copy at a time.
const maxBraceCount = 1 << 16

type frameReason int

const (
	frameGroup frameReason = iota
	frameAlt
)

// frame is a single entry on the compiler's pending stack: the NFA
// accumulated at the enclosing level before '(' or '|' was seen, and why
// it was pushed.
type frame struct {
	nfa    *NFA
	reason frameReason
}

// compiler walks the pattern once, left to right, maintaining a stack of
// pending frames and a "current" fragment that accumulates concatenation
// at the active nesting level.
type compiler struct {
	pattern []byte
	pos     int
	config  Config
	stack   []frame
	current *NFA
}

// Compile parses pattern into a compiled NFA. The grammar:
//
//   - a printable ASCII byte or tab matches itself; '.' matches any
//     printable ASCII byte but not tab;
//   - `\t` is tab, `\s` is tab or space, `\d` is an ASCII digit, and a
//     backslash before one of \ | . ^ $ ? + * { } [ ] ( ) / makes that
//     byte literal;
//   - `[...]` and `[^...]` are classes of single bytes and of ranges
//     within one of A-Z, a-z or 0-9; a leading '-' is literal, and `\[`,
//     `\]` and `\t` are the only escapes inside;
//   - `(...)` groups (an empty group matches the empty string) and '|'
//     separates alternatives, none of which may be empty;
//   - '?', '+', '*' and `{n}` (n >= 1) quantify the preceding atom or
//     group;
//   - '^' anchors the start of a line and is allowed only first in its
//     group or alternative; '$' anchors the end of a line;
//   - a trailing `/X`, with X a single literal, escape or class, asserts
//     that X comes next without consuming it; it must end the pattern
//     and is rejected after an unclosed '(' or a '|'.
func Compile(pattern []byte) (*NFA, error) {
	return CompileWithConfig(pattern, Config{})
}

// CompileWithConfig is Compile with explicit compilation limits.
func CompileWithConfig(pattern []byte, config Config) (*NFA, error) {
	if len(pattern) == 0 {
		return nil, diagnose(pattern, 0, ErrBadArgs)
	}
	if config.MaxStates == 0 {
		config.MaxStates = DefaultMaxStates
	}

	c := &compiler{pattern: pattern, config: config, current: emptyFrag()}
	n, err := c.run()
	if err != nil {
		return nil, diagnose(pattern, c.pos, err)
	}
	if n.Length() > config.MaxStates {
		return nil, diagnose(pattern, c.pos, ErrTooLong)
	}
	n.pattern = string(pattern)
	return n, nil
}

// diagnose wraps err with the pattern and offending column, and emits the
// single side-channel diagnostic line the specification calls for. Core
// behavior never depends on whether this line is observed.
func diagnose(pattern []byte, col int, err error) error {
	ce := &CompileError{Pattern: string(pattern), Col: col, Err: err}
	gologger.Debug().Msgf("grrex: %v", ce)
	return ce
}

func (c *compiler) run() (*NFA, error) {
	for c.pos < len(c.pattern) {
		b := c.pattern[c.pos]
		switch b {
		case '(':
			c.stack = append(c.stack, frame{nfa: c.current, reason: frameGroup})
			c.current = emptyFrag()
			c.pos++

		case '|':
			if c.current.Length() == 0 {
				return nil, ErrBadData
			}
			c.stack = append(c.stack, frame{nfa: c.current, reason: frameAlt})
			c.current = emptyFrag()
			c.pos++

		case ')':
			if err := c.closeGroup(); err != nil {
				return nil, err
			}

		case '^':
			if c.current.Length() != 0 {
				return nil, ErrBadData
			}
			c.pos++
			if err := c.addAtom(newAnchorFrag(SymStart)); err != nil {
				return nil, err
			}

		case '$':
			c.pos++
			if err := c.addAtom(newAnchorFrag(SymEnd)); err != nil {
				return nil, err
			}

		case '.':
			c.pos++
			if err := c.addAtom(newWildcardFrag()); err != nil {
				return nil, err
			}

		case '[':
			frag, err := c.parseClass()
			if err != nil {
				return nil, err
			}
			if err := c.addAtom(frag); err != nil {
				return nil, err
			}

		case '\\':
			frag, err := c.parseEscape()
			if err != nil {
				return nil, err
			}
			if err := c.addAtom(frag); err != nil {
				return nil, err
			}

		case '?', '+', '*', '{':
			return nil, ErrBadData

		case '/':
			return c.finishWithLookahead()

		default:
			if !isPrintableOrTab(b) {
				return nil, ErrBadData
			}
			c.pos++
			if err := c.addAtom(newSymbolFrag(singleByteSet(b))); err != nil {
				return nil, err
			}
		}
	}

	return c.finish()
}

// addAtom applies any quantifier suffix immediately following a freshly
// parsed atom/group, then concatenates the (possibly quantified) fragment
// onto c.current.
func (c *compiler) addAtom(frag *NFA) error {
	frag, err := c.maybeApplyQuantifier(frag)
	if err != nil {
		return err
	}
	c.current = concat(c.current, frag)
	return nil
}

func (c *compiler) maybeApplyQuantifier(frag *NFA) (*NFA, error) {
	if c.pos >= len(c.pattern) {
		return frag, nil
	}
	switch c.pattern[c.pos] {
	case '?':
		c.pos++
		return applyOptional(frag), nil
	case '+':
		c.pos++
		return applyPlus(frag), nil
	case '*':
		c.pos++
		return applyStar(frag), nil
	case '{':
		c.pos++
		n, err := c.parseBraceCount()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrBadData
		}
		if n > maxBraceCount {
			return nil, ErrTooLong
		}
		return applyBrace(frag, n), nil
	default:
		return frag, nil
	}
}

// parseBraceCount parses the decimal digits of `{n}` up to and including
// the closing brace; c.pos is positioned just after '{' on entry.
func (c *compiler) parseBraceCount() (int, error) {
	start := c.pos
	for c.pos < len(c.pattern) && c.pattern[c.pos] >= '0' && c.pattern[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == start {
		return 0, ErrBadData
	}
	if c.pos >= len(c.pattern) || c.pattern[c.pos] != '}' {
		return 0, ErrBadData
	}
	n, err := strconv.Atoi(string(c.pattern[start:c.pos]))
	if err != nil {
		return 0, ErrBadData
	}
	c.pos++ // consume '}'
	return n, nil
}

// closeGroup pops frames back to the nearest '(', stitching any '|'
// frames plus the current fragment left-associatively, then subjects the
// result to a quantifier check before concatenating it into the
// enclosing frame. An empty final alternative is ErrBadData.
func (c *compiler) closeGroup() error {
	c.pos++ // consume ')'

	var alts []*NFA
	for {
		if len(c.stack) == 0 {
			return ErrBadData
		}
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		if top.reason == frameAlt {
			alts = append(alts, top.nfa)
			continue
		}

		if len(alts) > 0 && c.current.Length() == 0 {
			return ErrBadData
		}
		stitched := stitchAlts(alts, c.current)
		stitched, err := c.maybeApplyQuantifier(stitched)
		if err != nil {
			return err
		}
		c.current = concat(top.nfa, stitched)
		return nil
	}
}

// finish stitches any '|' frames remaining on the stack into c.current.
// A remaining '(' frame is an unclosed-group error, and an empty final
// alternative is ErrBadData.
func (c *compiler) finish() (*NFA, error) {
	var alts []*NFA
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		if top.reason == frameGroup {
			return nil, ErrBadData
		}
		alts = append(alts, top.nfa)
	}
	if len(alts) > 0 && c.current.Length() == 0 {
		return nil, ErrBadData
	}
	return stitchAlts(alts, c.current), nil
}

// stitchAlts folds alts (collected in pop order, i.e. most-recently
// pushed first) and final left-associatively with disjoin, matching
// encounter order in the source pattern.
func stitchAlts(alts []*NFA, final *NFA) *NFA {
	for i, j := 0, len(alts)-1; i < j; i, j = i+1, j-1 {
		alts[i], alts[j] = alts[j], alts[i]
	}
	seq := append(alts, final)
	stitched := seq[0]
	for _, f := range seq[1:] {
		stitched = disjoin(stitched, f)
	}
	return stitched
}

// finishWithLookahead handles the trailing `/X` construct: '/' is only
// legal when nothing is pending on the stack (no unclosed group and no
// earlier '|') and only when X is the final atom in the pattern.
func (c *compiler) finishWithLookahead() (*NFA, error) {
	if len(c.stack) != 0 {
		return nil, ErrBadData
	}
	c.pos++ // consume '/'

	frag, err := c.parseLookaheadAtom()
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.pattern) {
		return nil, ErrBadData
	}

	c.current = concat(c.current, markLookahead(frag))
	return c.current, nil
}

// parseLookaheadAtom parses exactly one atom (literal, escape, or class)
// for use as a trailing lookahead assertion; no quantifier is permitted
// on it.
func (c *compiler) parseLookaheadAtom() (*NFA, error) {
	if c.pos >= len(c.pattern) {
		return nil, ErrBadData
	}
	b := c.pattern[c.pos]
	switch {
	case b == '[':
		return c.parseClass()
	case b == '\\':
		return c.parseEscape()
	case isPrintableOrTab(b):
		c.pos++
		return newSymbolFrag(singleByteSet(b)), nil
	default:
		return nil, ErrBadData
	}
}

// parseEscape parses a backslash escape; c.pos is positioned at the
// backslash on entry.
func (c *compiler) parseEscape() (*NFA, error) {
	c.pos++ // consume '\\'
	if c.pos >= len(c.pattern) {
		return nil, ErrBadData
	}
	b := c.pattern[c.pos]
	c.pos++

	switch b {
	case 't':
		return newSymbolFrag(singleByteSet('\t')), nil
	case 's':
		var set SymbolSet
		set.Set(SymTab)
		set = set.Union(singleByteSet(' '))
		return newSymbolFrag(set), nil
	case 'd':
		var set SymbolSet
		for d := byte('0'); d <= '9'; d++ {
			set = set.Union(singleByteSet(d))
		}
		return newSymbolFrag(set), nil
	case '\\', '|', '.', '^', '$', '?', '+', '*', '{', '}', '[', ']', '(', ')', '/':
		return newSymbolFrag(singleByteSet(b)), nil
	default:
		return nil, ErrBadData
	}
}

// parseClass parses a `[...]` character class; c.pos is positioned at
// '[' on entry.
func (c *compiler) parseClass() (*NFA, error) {
	c.pos++ // consume '['

	negate := false
	if c.pos < len(c.pattern) && c.pattern[c.pos] == '^' {
		negate = true
		c.pos++
	}

	var set SymbolSet
	first := true
	for {
		if c.pos >= len(c.pattern) {
			return nil, ErrBadData
		}
		b := c.pattern[c.pos]
		if b == ']' {
			if first {
				return nil, ErrBadData
			}
			c.pos++
			break
		}

		lo, err := c.classChar(first)
		if err != nil {
			return nil, err
		}
		first = false

		if c.pos < len(c.pattern) && c.pattern[c.pos] == '-' && c.pos+1 < len(c.pattern) && c.pattern[c.pos+1] != ']' {
			c.pos++ // consume '-'
			hi, err := c.classChar(false)
			if err != nil {
				return nil, err
			}
			if hi < lo || !sameClassBlock(lo, hi) {
				return nil, ErrBadData
			}
			for ch := lo; ch <= hi; ch++ {
				set = set.Union(singleByteSet(ch))
			}
		} else {
			set = set.Union(singleByteSet(lo))
		}
	}

	if negate {
		set = negateASCII(set)
	}
	return newSymbolFrag(set), nil
}

// classChar parses one character-class member byte, handling the
// leading-literal-dash rule and the restricted set of escapes valid
// inside a class.
func (c *compiler) classChar(leadingDash bool) (byte, error) {
	b := c.pattern[c.pos]
	if b == '-' && leadingDash {
		c.pos++
		return '-', nil
	}
	if b == '\\' {
		c.pos++
		if c.pos >= len(c.pattern) {
			return 0, ErrBadData
		}
		esc := c.pattern[c.pos]
		c.pos++
		switch esc {
		case '[', ']':
			return esc, nil
		case 't':
			return '\t', nil
		default:
			return 0, ErrBadData
		}
	}
	if !isPrintableOrTab(b) || b == '\t' {
		return 0, ErrBadData
	}
	c.pos++
	return b, nil
}
