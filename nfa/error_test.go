package nfa

import (
	"errors"
	"testing"
)

func TestCompileErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *CompileError
		want string
	}{
		{
			name: "with pattern",
			err:  &CompileError{Pattern: "a(b", Col: 3, Err: ErrBadData},
			want: `grrex: compile failed for pattern "a(b" at column 3: grrex: bad data`,
		},
		{
			name: "without pattern",
			err:  &CompileError{Err: ErrBadArgs},
			want: "grrex: compile failed: grrex: bad arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrorUnwrap(t *testing.T) {
	err := &CompileError{Pattern: "x", Col: 0, Err: ErrBadData}
	if !errors.Is(err, ErrBadData) {
		t.Error("errors.Is should see through Unwrap to ErrBadData")
	}
	if errors.Is(err, ErrTooLong) {
		t.Error("errors.Is should not match an unrelated sentinel")
	}
}
