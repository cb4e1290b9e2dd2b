// Package worker runs question batches on a bounded pool and rate limits
// outbound fetches per host.
package worker

import (
	"context"
	"sync"
)

// Pool applies a task to a slice of items on a fixed number of goroutines
type Pool[T, R any] struct {
	workers int
	task    func(ctx context.Context, i int, item T) R
}

// NewPool creates a pool with the given number of workers (at least one)
func NewPool[T, R any](workers int, task func(ctx context.Context, i int, item T) R) *Pool[T, R] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, task: task}
}

// Workers reports the pool size
func (p *Pool[T, R]) Workers() int {
	return p.workers
}

// Run applies the task to every item and returns the outputs in input order.
// Once ctx is done no new item is started; ran[i] is false for those items.
func (p *Pool[T, R]) Run(ctx context.Context, items []T) (out []R, ran []bool) {
	out = make([]R, len(items))
	ran = make([]bool, len(items))
	if len(items) == 0 {
		return out, ran
	}

	workers := min(p.workers, len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					continue
				}
				out[i] = p.task(ctx, i, items[i])
				ran[i] = true
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return out, ran
}
