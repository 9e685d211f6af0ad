// Package zipper implements a small streaming, backtracking combinator engine
// over a positional token sequence.
//
// A Zipper pairs an input cursor with the results recognized so far. Every
// operator is a pure function from one Zipper value to the next: input is
// consumed only by returning a new state whose cursor sits further along, so
// the caller keeps the pre-step state for free and backtracking is simply
// "use the old value".
//
// Rules signal "no match" by returning an empty result slice. Returning an
// error is reserved for genuinely exceptional conditions; each operator can be
// told to swallow an enumerated class of errors via Catching, everything else
// aborts the whole pipeline.
package zipper

// A Rule recognizes a single input item, fanning it out into zero or more
// results. An empty result slice means the rule declined the item.
type Rule[I, O any] func(I) ([]O, error)

// A BlockRule recognizes a fixed-size block of input items at once.
type BlockRule[I, O any] func([]I) ([]O, error)

// An Op transforms one engine state into the next.
type Op[I, O any] func(Zipper[I, O]) (Zipper[I, O], error)

// Zipper is the engine state: a cursor plus the results accumulated by the
// steps that moved the cursor there.
type Zipper[I, O any] struct {
	leftover Input[I]
	results  []O
}

// New starts an empty engine state at the given cursor.
func New[I, O any](in Input[I]) Zipper[I, O] {
	return Zipper[I, O]{leftover: in}
}

// Leftover returns the unconsumed input cursor.
func (z Zipper[I, O]) Leftover() Input[I] {
	return z.leftover
}

// Results returns the accumulated results in consumption order.
func (z Zipper[I, O]) Results() []O {
	return z.results
}

// Merge combines two engine states: the second state's cursor wins, since it
// reflects more consumption, and results concatenate in consumption order.
// Every operator is built from this one law.
func (z Zipper[I, O]) Merge(other Zipper[I, O]) Zipper[I, O] {
	merged := make([]O, 0, len(z.results)+len(other.results))
	merged = append(merged, z.results...)
	merged = append(merged, other.results...)
	return Zipper[I, O]{leftover: other.leftover, results: merged}
}

type config struct {
	catch func(error) bool
}

func newConfig(opts []Option) config {
	c := config{catch: func(error) bool { return false }}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures an operator.
type Option func(*config)

// Catching makes an operator treat errors matched by pred as a plain
// "no match" instead of aborting the pipeline.
func Catching(pred func(error) bool) Option {
	return func(c *config) {
		c.catch = pred
	}
}

// ConsumeWith applies rule to the current item. On a match the item is
// consumed and the results appended; on no-match the state passes through
// unchanged.
func ConsumeWith[I, O any](rule Rule[I, O], opts ...Option) Op[I, O] {
	return takeWhile(rule, true, opts)
}

// TakeWhile applies rule to successive items, consuming for as long as the
// rule keeps matching. A failed step never consumes partially.
func TakeWhile[I, O any](rule Rule[I, O], opts ...Option) Op[I, O] {
	return takeWhile(rule, false, opts)
}

func takeWhile[I, O any](rule Rule[I, O], single bool, opts []Option) Op[I, O] {
	cfg := newConfig(opts)
	return func(z Zipper[I, O]) (Zipper[I, O], error) {
		var (
			n       int
			results []O
		)
		for {
			if single && n == 1 {
				break
			}
			cur, err := z.leftover.Advance(n)
			if err != nil {
				return z, err
			}
			if cur.Empty() {
				if single {
					_, err := cur.Item()
					if cfg.catch(err) {
						break
					}
					return z, err
				}
				break
			}
			item, err := cur.Item()
			if err != nil {
				return z, err
			}
			stepResults, err := rule(item)
			if err != nil {
				if cfg.catch(err) {
					break
				}
				return z, err
			}
			if len(stepResults) == 0 {
				break
			}
			results = append(results, stepResults...)
			n++
		}
		leftover, err := z.leftover.Advance(n)
		if err != nil {
			return z, err
		}
		return z.Merge(Zipper[I, O]{leftover: leftover, results: results}), nil
	}
}

// ConsumeN hands the next n items to rule as one block. If the rule reports
// an error the operator was told to catch, the state passes through with
// nothing consumed; otherwise the block is consumed and the yielded results
// appended, even when that yield is empty. Fewer than n items remaining is
// ErrEndOfInput.
func ConsumeN[I, O any](n int, rule BlockRule[I, O], opts ...Option) Op[I, O] {
	cfg := newConfig(opts)
	return func(z Zipper[I, O]) (Zipper[I, O], error) {
		leftover, err := z.leftover.Advance(n)
		if err != nil {
			if cfg.catch(err) {
				return z, nil
			}
			return z, err
		}
		results, err := rule(z.leftover.window(n))
		if err != nil {
			if cfg.catch(err) {
				return z, nil
			}
			return z, err
		}
		return z.Merge(Zipper[I, O]{leftover: leftover, results: results}), nil
	}
}

// FirstMatchOf tries each rule in order against the current item; the first
// one to match consumes the item and contributes its results. If none match,
// the state passes through unchanged.
func FirstMatchOf[I, O any](rules []Rule[I, O], opts ...Option) Op[I, O] {
	cfg := newConfig(opts)
	return func(z Zipper[I, O]) (Zipper[I, O], error) {
		for _, rule := range rules {
			item, err := z.leftover.Item()
			if err != nil {
				if cfg.catch(err) {
					continue
				}
				return z, err
			}
			results, err := rule(item)
			if err != nil {
				if cfg.catch(err) {
					continue
				}
				return z, err
			}
			if len(results) == 0 {
				continue
			}
			leftover, err := z.leftover.Advance(1)
			if err != nil {
				return z, err
			}
			return z.Merge(Zipper[I, O]{leftover: leftover, results: results}), nil
		}
		return z, nil
	}
}

// Reduce chains operators into one pipeline, applying them left to right.
func Reduce[I, O any](ops ...Op[I, O]) Op[I, O] {
	return func(z Zipper[I, O]) (Zipper[I, O], error) {
		var err error
		for _, op := range ops {
			z, err = op(z)
			if err != nil {
				return z, err
			}
		}
		return z, nil
	}
}
