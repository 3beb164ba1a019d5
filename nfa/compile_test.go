package nfa

import (
	"errors"
	"testing"
)

func TestCompileInvariants(t *testing.T) {
	patterns := []string{
		"a", "a+", "a*", "a?", "a{3}", "a{1}",
		"(a|b)", "a|b|c", "[a-z]+", "[^a-z]", "^a$",
		"(foo|foobar)", "do/g", "()", "a(b|c)d{2}",
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			n, err := Compile([]byte(p))
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", p, err)
			}
			L := n.Length()
			if n.Accept() != L {
				t.Fatalf("Accept() = %d, want %d", n.Accept(), L)
			}
			for s := 0; s < L; s++ {
				for _, tr := range n.transitionsAt(s) {
					dst := s + tr.Motion
					if dst < 0 || dst > L {
						t.Fatalf("state %d: motion %d yields out-of-range dest %d (L=%d)", s, tr.Motion, dst, L)
					}
					if tr.Symbols.IsEmpty() {
						t.Fatalf("state %d has a transition with no symbols set", s)
					}
				}
			}
		})
	}
}

func TestCompileBadArgs(t *testing.T) {
	_, err := Compile(nil)
	if !errors.Is(err, ErrBadArgs) {
		t.Fatalf("Compile(nil) error = %v, want ErrBadArgs", err)
	}
	_, err = Compile([]byte{})
	if !errors.Is(err, ErrBadArgs) {
		t.Fatalf("Compile(\"\") error = %v, want ErrBadArgs", err)
	}
}

func TestCompileBadData(t *testing.T) {
	tests := []string{
		"a(b",       // unclosed group
		"a)",        // unmatched close
		"?a",        // quantifier with no preceding atom
		"a??",       // quantifier following a quantifier
		"a{",        // unclosed brace
		"a{}",       // empty brace
		"a{x}",      // non-numeric brace
		"a{0}",      // zero count rejected
		"[a-z",      // unclosed class
		"[]",        // empty class
		"[z-a]",     // inverted range
		"[A-a]",     // range spans case blocks
		"a^",        // '^' not at start of its frame
		"do/g/h",    // bytes after lookahead atom
		"a/",        // lookahead with nothing to assert
		"a\\q",      // invalid escape
		"a\\",       // trailing backslash
		"a\x01b",    // unprintable byte
		"(a|)",      // empty alternative
	}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			_, err := Compile([]byte(p))
			if !errors.Is(err, ErrBadData) {
				t.Fatalf("Compile(%q) error = %v, want ErrBadData", p, err)
			}
		})
	}
}

func TestCompileEmptyGroup(t *testing.T) {
	n, err := Compile([]byte("a()b"))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	ok, err := Match(n, []byte("ab"))
	if err != nil || !ok {
		t.Fatalf("Match(%q) = %v, %v, want true, nil", "ab", ok, err)
	}
}

func TestCompileBraceIdempotence(t *testing.T) {
	a, err := Compile([]byte("x{1}"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Length() != b.Length() {
		t.Fatalf("x{1} has %d states, x has %d; want equal", a.Length(), b.Length())
	}
}

func TestCompileAlternationCommutativity(t *testing.T) {
	forward, err := Compile([]byte("cat|dog"))
	if err != nil {
		t.Fatal(err)
	}
	backward, err := Compile([]byte("dog|cat"))
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"cat", "dog", "catdog", "bird"} {
		wantF, _ := Match(forward, []byte(input))
		wantB, _ := Match(backward, []byte(input))
		if wantF != wantB {
			t.Fatalf("input %q: forward=%v backward=%v, want equal", input, wantF, wantB)
		}
	}
}

func TestCompileConcatAssociativity(t *testing.T) {
	left, err := Compile([]byte("(ab)c"))
	if err != nil {
		t.Fatal(err)
	}
	right, err := Compile([]byte("a(bc)"))
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"abc", "ab", "abcd", ""} {
		wantL, _ := Match(left, []byte(input))
		wantR, _ := Match(right, []byte(input))
		if wantL != wantR {
			t.Fatalf("input %q: left=%v right=%v, want equal", input, wantL, wantR)
		}
	}
}

func TestCompileClassNegation(t *testing.T) {
	n, err := Compile([]byte(`[^\t]`))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Match(n, []byte("\t"))
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if ok {
		t.Fatal("[^\\t] should not match a tab")
	}
}

func TestCompilePatternAccessor(t *testing.T) {
	n, err := Compile([]byte("a+b"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Pattern() != "a+b" {
		t.Fatalf("Pattern() = %q, want %q", n.Pattern(), "a+b")
	}
}
