package nfa

import "testing"

func TestMatchBasic(t *testing.T) {
	tests := []struct {
		pattern, input string
		want            bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{"a", "aa", false},
		{"a+", "aaa", true},
		{"a+", "", false},
		{"a*", "", true},
		{"a*", "aaa", true},
		{"a?b", "b", true},
		{"a?b", "ab", true},
		{"a?b", "aab", false},
		{"a{3}", "aaa", true},
		{"a{3}", "aa", false},
		{"a{3}", "aaaa", false},
		{"a{1}", "a", true},
		{"(a|b)", "a", true},
		{"(a|b)", "b", true},
		{"(a|b)", "c", false},
		{"a(b|c)d", "abd", true},
		{"a(b|c)d", "acd", true},
		{"a(b|c)d", "aed", false},
		{"[A-Z][a-z]+", "Hello", true},
		{"[A-Z][a-z]+", "hello", false},
		{"[^a-z]", "A", true},
		{"[^a-z]", "a", false},
		{"()", "", true},
		{"a()b", "ab", true},
		{".", "x", true},
		{".", "\t", false},
		{"\\t", "\t", true},
		{"\\s", " ", true},
		{"\\s", "\t", true},
		{"\\d", "5", true},
		{"\\d", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			n, err := Compile([]byte(tt.pattern))
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			got, err := Match(n, []byte(tt.input))
			if err != nil {
				t.Fatalf("Match error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchAnchors(t *testing.T) {
	n, err := Compile([]byte("^a+$"))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Match(n, []byte("aaa"))
	if err != nil || !ok {
		t.Fatalf("Match(^a+$, aaa) = %v, %v, want true, nil", ok, err)
	}
}

func TestMatchRejectsUnprintable(t *testing.T) {
	n, err := Compile([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Match(n, []byte("a\x01"))
	if err != ErrBadData {
		t.Fatalf("Match with unprintable byte: err = %v, want ErrBadData", err)
	}
}

func TestMatchNilNFA(t *testing.T) {
	_, err := Match(nil, []byte("a"))
	if err != ErrBadArgs {
		t.Fatalf("Match(nil, ...) error = %v, want ErrBadArgs", err)
	}
}

func TestMatchLookaheadNeverConsumesPastAssertion(t *testing.T) {
	// "do/g" asserts a trailing 'g' without consuming it, so the whole
	// text "dog" is never fully consumed by an exact match: Match
	// requires every byte to be accounted for.
	n, err := Compile([]byte("do/g"))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Match(n, []byte("dog"))
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if ok {
		t.Fatal("exact match over \"dog\" against \"do/g\" should fail: trailing 'g' is never consumed")
	}
}

func TestCanReachAcceptThroughStar(t *testing.T) {
	n, err := Compile([]byte("a*"))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Match(n, []byte(""))
	if err != nil || !ok {
		t.Fatalf("Match(a*, \"\") = %v, %v, want true, nil", ok, err)
	}
}
