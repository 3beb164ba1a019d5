package literal

import (
	"testing"
)

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"single literal", "foo", []string{"foo"}},
		{"alternation", "foo|bar|baz", []string{"foo", "bar", "baz"}},
		{"tab escape", `a\tb`, []string{"a\tb"}},
		{"escaped meta", `a\.b`, []string{"a.b"}},
		{"empty pattern", "", nil},
		{"wildcard bails", "a.b", nil},
		{"anchor bails", "^a", nil},
		{"quantifier bails", "a+", nil},
		{"class bails", "[ab]", nil},
		{"group bails", "(a)", nil},
		{"lookahead bails", "do/g", nil},
		{"empty alternative bails", "foo||bar", nil},
		{"bad escape bails", `a\xb`, nil},
		{"trailing backslash bails", `a\`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := ExtractPrefixes([]byte(tt.pattern))
			if seq.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", seq.Len(), len(tt.want))
			}
			for i, w := range tt.want {
				if got := string(seq.Get(i).Bytes); got != w {
					t.Errorf("literal[%d] = %q, want %q", i, got, w)
				}
				if !seq.Get(i).Complete {
					t.Errorf("literal[%d].Complete = false, want true", i)
				}
			}
		})
	}
}
