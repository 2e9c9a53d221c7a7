package parallel

import (
	"context"
	"errors"
	"fmt"
)

// Result pairs the output of one item with its error.
type Result[R any] struct {
	Value R
	Err   error
}

// ErrPanic wraps a panic raised while processing an item.
var ErrPanic = errors.New("task panicked")

// MapOrdered applies fn to every item using up to workers goroutines and
// returns results at the same indexes as items, whatever order the work
// finished in. Items not yet started when ctx is cancelled get ctx.Err().
func MapOrdered[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	pool := NewWorkerPool(min(workers, len(items)), nil)
	for i, item := range items {
		task := func() {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			results[i].Value, results[i].Err = fn(ctx, item)
		}
		if err := pool.Submit(ctx, task); err != nil {
			results[i].Err = err
		}
	}
	pool.Close()

	return results
}
