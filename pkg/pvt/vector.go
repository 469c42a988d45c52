package pvt

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MapOptions controls element-wise evaluation.
type MapOptions struct {
	// Workers > 1 evaluates elements concurrently with at most that many
	// goroutines. Otherwise elements are evaluated in order on the caller's
	// goroutine.
	Workers int
	// FailFast stops at the first failing element. By default every element
	// is attempted and failures are collected in an *ElementErrors.
	FailFast bool
}

// ElementError is the failure of one element of a vector evaluation.
type ElementError struct {
	Index int
	Err   error
}

func (e ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e ElementError) Unwrap() error { return e.Err }

// ElementErrors collects the failed elements of a vector evaluation, sorted
// by index. The corresponding outputs are NaN.
type ElementErrors struct {
	Failed []ElementError
}

func (e *ElementErrors) Error() string {
	msgs := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d element(s) failed: %s", len(e.Failed), strings.Join(msgs, "; "))
}

// Unwrap exposes every element's error to errors.Is and errors.As.
func (e *ElementErrors) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}

// Indices returns the failed element indices.
func (e *ElementErrors) Indices() []int {
	idx := make([]int, len(e.Failed))
	for i, f := range e.Failed {
		idx[i] = f.Index
	}
	return idx
}

// Broadcast returns the common length of the inputs. Length-one inputs are
// repeated to match; any other mismatch is an ErrShape error.
func Broadcast(inputs ...[]float64) (int, error) {
	n := -1
	for i, in := range inputs {
		if len(in) == 1 {
			continue
		}
		if n == -1 {
			n = len(in)
			continue
		}
		if len(in) != n {
			return 0, fmt.Errorf("%w: input %d has length %d, want %d or 1", ErrShape, i, len(in), n)
		}
	}
	if n == -1 {
		if len(inputs) == 0 {
			return 0, nil
		}
		return 1, nil
	}
	return n, nil
}

// Map evaluates f element-wise over the broadcast inputs. f receives the
// i-th value of every input, in argument order, and the output has the
// broadcast length. out[i] is exactly f applied to the i-th elements whatever
// the worker count.
func Map(ctx context.Context, opts MapOptions, f func(x []float64) (float64, error), inputs ...[]float64) ([]float64, error) {
	n, err := Broadcast(inputs...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	row := func(i int) []float64 {
		x := make([]float64, len(inputs))
		for j, in := range inputs {
			if len(in) == 1 {
				x[j] = in[0]
			} else {
				x[j] = in[i]
			}
		}
		return x
	}

	if opts.Workers <= 1 {
		var failed []ElementError
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			v, err := f(row(i))
			if err != nil {
				if opts.FailFast {
					return out, ElementError{Index: i, Err: err}
				}
				failed = append(failed, ElementError{Index: i, Err: err})
				continue
			}
			out[i] = v
		}
		return out, collected(failed)
	}

	var (
		mu     sync.Mutex
		failed []ElementError
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := f(row(i))
			if err != nil {
				if opts.FailFast {
					return ElementError{Index: i, Err: err}
				}
				mu.Lock()
				failed = append(failed, ElementError{Index: i, Err: err})
				mu.Unlock()
				return nil
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	sort.Slice(failed, func(a, b int) bool { return failed[a].Index < failed[b].Index })
	return out, collected(failed)
}

func collected(failed []ElementError) error {
	if len(failed) == 0 {
		return nil
	}
	return &ElementErrors{Failed: failed}
}

// Map1 is Map over a single input.
func Map1(ctx context.Context, opts MapOptions, f func(float64) (float64, error), xs []float64) ([]float64, error) {
	return Map(ctx, opts, func(x []float64) (float64, error) { return f(x[0]) }, xs)
}
