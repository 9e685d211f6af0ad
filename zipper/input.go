package zipper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEndOfInput is reported when a consumption step runs past the end of the
// token sequence. During address parsing this usually means an earlier greedy
// stage (street name, city) ate tokens belonging to a later required stage.
var ErrEndOfInput = errors.New("reached end of input")

// Input is an immutable cursor over a token sequence. Advancing never mutates
// the receiver; every advance shares the underlying sequence and returns a new
// value, which is what makes backtracking free.
type Input[T any] struct {
	data []T
	pos  int
}

// NewInput wraps a token sequence in a cursor positioned at its start.
func NewInput[T any](data []T) Input[T] {
	return Input[T]{data: data}
}

// FromString uppercases s and splits it on whitespace.
func FromString(s string) Input[string] {
	return NewInput(strings.Fields(strings.ToUpper(s)))
}

// Item returns the token under the cursor.
func (in Input[T]) Item() (T, error) {
	if in.pos >= len(in.data) {
		var zero T
		return zero, fmt.Errorf("%w at %d", ErrEndOfInput, in.pos)
	}
	return in.data[in.pos], nil
}

// Advance returns a cursor moved forward by step tokens. Advancing exactly to
// the end of the sequence is legal and yields an exhausted cursor; advancing
// past it reports ErrEndOfInput.
func (in Input[T]) Advance(step int) (Input[T], error) {
	if in.pos+step > len(in.data) {
		return in, fmt.Errorf("%w advancing %d from %d", ErrEndOfInput, step, in.pos)
	}
	return Input[T]{data: in.data, pos: in.pos + step}, nil
}

// Rest is Advance(1).
func (in Input[T]) Rest() (Input[T], error) {
	return in.Advance(1)
}

// Empty reports whether the cursor is exhausted.
func (in Input[T]) Empty() bool {
	return in.pos >= len(in.data)
}

// Pos returns the cursor position, counted in consumed tokens.
func (in Input[T]) Pos() int {
	return in.pos
}

// Len returns the number of tokens remaining under and after the cursor.
func (in Input[T]) Len() int {
	return len(in.data) - in.pos
}

// window returns up to n tokens starting at the cursor without consuming them.
func (in Input[T]) window(n int) []T {
	end := in.pos + n
	if end > len(in.data) {
		end = len(in.data)
	}
	return in.data[in.pos:end]
}

// String renders the unconsumed remainder, for diagnostics.
func (in Input[T]) String() string {
	parts := make([]string, 0, in.Len())
	for _, t := range in.data[in.pos:] {
		parts = append(parts, fmt.Sprint(t))
	}
	return strings.Join(parts, " ")
}
