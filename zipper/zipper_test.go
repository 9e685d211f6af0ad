package zipper

import (
	"errors"
	"slices"
	"testing"
)

// fanOdd matches odd numbers, fanning each into three results.
func fanOdd(n int) ([]int, error) {
	if n%2 == 0 {
		return nil, nil
	}
	return []int{n, n + 1, n + 2}, nil
}

func fanEven(n int) ([]int, error) {
	if n%2 == 1 {
		return nil, nil
	}
	return []int{n, n + 1, n + 2}, nil
}

func ident(block []int) ([]int, error) {
	return block, nil
}

func fanAll(ns []int) []int {
	var out []int
	for _, n := range ns {
		odd, _ := fanOdd(n)
		even, _ := fanEven(n)
		out = append(out, odd...)
		out = append(out, even...)
	}
	return out
}

func TestTakeWhile(t *testing.T) {
	odds := []int{1, 3, 7}
	evens := []int{2, 4, 8}

	tests := []struct {
		name     string
		input    []int
		ops      []Op[int, int]
		expected []int
		leftover int
	}{
		{
			name:     "consumes while matching",
			input:    odds,
			ops:      []Op[int, int]{TakeWhile(Rule[int, int](fanOdd))},
			expected: fanAll(odds),
			leftover: 0,
		},
		{
			name:     "empty input yields nothing",
			input:    nil,
			ops:      []Op[int, int]{TakeWhile(Rule[int, int](fanOdd))},
			expected: nil,
			leftover: 0,
		},
		{
			name:     "stops at first mismatch",
			input:    append(slices.Clone(evens), odds...),
			ops:      []Op[int, int]{TakeWhile(Rule[int, int](fanEven))},
			expected: fanAll(evens),
			leftover: len(odds),
		},
		{
			name:     "mismatch at start consumes nothing",
			input:    append(slices.Clone(odds), evens...),
			ops:      []Op[int, int]{TakeWhile(Rule[int, int](fanEven))},
			expected: nil,
			leftover: len(odds) + len(evens),
		},
		{
			name:  "chained pipelines accumulate in order",
			input: []int{1, 3, 7, 2, 4, 8, 1, 3, 7},
			ops: []Op[int, int]{
				TakeWhile(Rule[int, int](fanOdd)),
				TakeWhile(Rule[int, int](fanEven)),
				TakeWhile(Rule[int, int](fanOdd)),
			},
			expected: fanAll([]int{1, 3, 7, 2, 4, 8, 1, 3, 7}),
			leftover: 0,
		},
		{
			name:  "failed stage passes state through",
			input: []int{1, 3, 7, 2},
			ops: []Op[int, int]{
				TakeWhile(Rule[int, int](fanOdd)),
				TakeWhile(Rule[int, int](fanOdd)),
				TakeWhile(Rule[int, int](fanEven)),
			},
			expected: fanAll([]int{1, 3, 7, 2}),
			leftover: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := Reduce(tt.ops...)(New[int, int](NewInput(tt.input)))
			if err != nil {
				t.Fatalf("pipeline failed: %v", err)
			}
			if !slices.Equal(z.Results(), tt.expected) {
				t.Errorf("results: got %v, want %v", z.Results(), tt.expected)
			}
			if z.Leftover().Len() != tt.leftover {
				t.Errorf("leftover: got %d tokens, want %d", z.Leftover().Len(), tt.leftover)
			}
		})
	}
}

func TestConsumeN(t *testing.T) {
	t.Run("consumes exactly n", func(t *testing.T) {
		z, err := ConsumeN(2, BlockRule[int, int](ident))(New[int, int](NewInput([]int{2, 3, 4})))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(z.Results(), []int{2, 3}) {
			t.Errorf("results: got %v, want [2 3]", z.Results())
		}
		if z.Leftover().Len() != 1 {
			t.Errorf("leftover: got %d tokens, want 1", z.Leftover().Len())
		}
	})

	t.Run("short input is end of input", func(t *testing.T) {
		for _, input := range [][]int{{}, {0}} {
			_, err := ConsumeN(2, BlockRule[int, int](ident))(New[int, int](NewInput(input)))
			if !errors.Is(err, ErrEndOfInput) {
				t.Errorf("input %v: got %v, want ErrEndOfInput", input, err)
			}
		}
	})

	t.Run("caught error consumes nothing", func(t *testing.T) {
		boom := errors.New("boom")
		rule := func([]int) ([]int, error) { return nil, boom }
		z, err := ConsumeN(2, rule, Catching(func(err error) bool { return errors.Is(err, boom) }))(
			New[int, int](NewInput([]int{2, 3, 4})))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(z.Results()) != 0 || z.Leftover().Len() != 3 {
			t.Errorf("state changed: results %v, leftover %d", z.Results(), z.Leftover().Len())
		}
	})
}

func TestEndOfInputPropagates(t *testing.T) {
	op := Reduce(
		TakeWhile(Rule[int, int](fanOdd)),
		ConsumeN(2, BlockRule[int, int](ident)),
	)
	_, err := op(New[int, int](NewInput([]int{1, 3, 7, 2})))
	if !errors.Is(err, ErrEndOfInput) {
		t.Errorf("got %v, want ErrEndOfInput", err)
	}
}

func TestFirstMatchOf(t *testing.T) {
	rules := []Rule[int, int]{fanEven, fanOdd}

	tests := []struct {
		name     string
		input    []int
		rules    []Rule[int, int]
		expected []int
	}{
		{"second rule wins", []int{1, 2}, rules, []int{1, 2, 3}},
		{"first rule wins", []int{2, 1}, rules, []int{2, 3, 4}},
		{"no rules consumes nothing", []int{2, 1}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := FirstMatchOf(tt.rules)(New[int, int](NewInput(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(z.Results(), tt.expected) {
				t.Errorf("results: got %v, want %v", z.Results(), tt.expected)
			}
		})
	}
}

func TestNonMutation(t *testing.T) {
	in := NewInput([]int{1, 3, 2})
	z := New[int, int](in)

	first, err := TakeWhile(Rule[int, int](fanOdd))(z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z.Leftover().Pos() != 0 || len(z.Results()) != 0 {
		t.Fatalf("operator mutated its input state")
	}

	// The original state must still be usable for a different branch.
	second, err := TakeWhile(Rule[int, int](fanEven))(z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Leftover().Pos() != 2 {
		t.Errorf("odd branch consumed %d, want 2", first.Leftover().Pos())
	}
	if second.Leftover().Pos() != 0 {
		t.Errorf("even branch consumed %d, want 0", second.Leftover().Pos())
	}
}

func TestCursorMonotonicity(t *testing.T) {
	z := New[int, int](NewInput([]int{1, 3, 2, 4}))
	for i, op := range []Op[int, int]{
		TakeWhile(Rule[int, int](fanOdd)),
		ConsumeWith(Rule[int, int](fanEven)),
		TakeWhile(Rule[int, int](fanOdd)),
	} {
		next, err := op(z)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if next.Leftover().Pos() < z.Leftover().Pos() {
			t.Fatalf("step %d moved cursor backwards: %d -> %d", i, z.Leftover().Pos(), next.Leftover().Pos())
		}
		z = next
	}
}

func TestInput(t *testing.T) {
	in := FromString("123 Main St")
	if got := in.String(); got != "123 MAIN ST" {
		t.Errorf("String: got %q, want %q", got, "123 MAIN ST")
	}

	item, err := in.Item()
	if err != nil || item != "123" {
		t.Errorf("Item: got %q, %v", item, err)
	}

	rest, err := in.Rest()
	if err != nil {
		t.Fatalf("Rest: %v", err)
	}
	if in.Pos() != 0 {
		t.Errorf("Rest mutated the original cursor")
	}
	if got := rest.String(); got != "MAIN ST" {
		t.Errorf("rest: got %q, want %q", got, "MAIN ST")
	}

	end, err := rest.Advance(2)
	if err != nil {
		t.Fatalf("Advance to end: %v", err)
	}
	if !end.Empty() {
		t.Errorf("cursor at end should be empty")
	}
	if _, err := end.Item(); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("Item at end: got %v, want ErrEndOfInput", err)
	}
	if _, err := end.Advance(1); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("Advance past end: got %v, want ErrEndOfInput", err)
	}
}
