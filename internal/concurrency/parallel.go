// Package concurrency runs independent jobs on a bounded worker pool.
package concurrency

import (
	"context"
	"fmt"
	"sync"
)

// ParallelOptions bounds a worker pool.
type ParallelOptions struct {
	MaxWorkers int
}

func DefaultOptions() ParallelOptions {
	return ParallelOptions{MaxWorkers: 4}
}

// ItemError ties a failure to the input it came from.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }
func (e *ItemError) Unwrap() error { return e.Err }

// ProcessParallel calls itemFunc for every item on up to MaxWorkers
// goroutines. Results keep the input order. Errors are returned as
// *ItemError sorted by index; items not started because ctx ended fail
// with ctx.Err().
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultOptions().MaxWorkers
	}
	workers = min(workers, len(items))

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	results := make([]R, len(items))
	itemErrs := make([]error, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					itemErrs[i] = err
					continue
				}
				results[i], itemErrs[i] = itemFunc(ctx, i, items[i])
			}
		}()
	}
	wg.Wait()

	var errs []error
	for i, err := range itemErrs {
		if err != nil {
			errs = append(errs, &ItemError{Index: i, Err: err})
		}
	}
	return results, errs
}
