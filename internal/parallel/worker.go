// Package parallel provides the bounded worker pool used to prepare
// indicator tables concurrently.
//
// Work items are independent; results are collected by index so the output
// order matches the input order regardless of scheduling. The first failing
// item cancels the remaining work.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool bound to ctx. A non-positive
// numWorkers means runtime.NumCPU().
func NewWorkerPool(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Workers returns the number of goroutines the pool runs.
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// ProcessIndexed executes work items in parallel while preserving order.
//
// When an item fails, items not yet started are skipped and the error of the
// lowest failing index is returned. Cancellation of the pool's context is
// reported as the context error.
func ProcessIndexed[T, R any](
	wp *WorkerPool,
	items []T,
	worker func(ctx context.Context, index int, item T) (R, error),
) ([]R, error) {
	if len(items) == 0 {
		return nil, wp.ctx.Err()
	}

	ctx, cancel := context.WithCancel(wp.ctx)
	defer cancel()

	itemCh := make(chan indexedItem[T], len(items))
	resultCh := make(chan indexedResult[R], len(items))

	workers := min(wp.numWorkers, len(items))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemCh {
				if ctx.Err() != nil {
					return
				}
				result, err := worker(ctx, item.index, item.value)
				if err != nil {
					cancel()
				}
				resultCh <- indexedResult[R]{index: item.index, result: result, err: err}
			}
		}()
	}

	for i, item := range items {
		itemCh <- indexedItem[T]{index: i, value: item}
	}
	close(itemCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]R, len(items))
	errIndex := -1
	var firstErr error
	done := 0
	for result := range resultCh {
		done++
		if result.err != nil {
			if errIndex < 0 || result.index < errIndex {
				errIndex, firstErr = result.index, result.err
			}
			continue
		}
		results[result.index] = result.result
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done < len(items) {
		return nil, wp.ctx.Err()
	}
	return results, nil
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.cancel()
}

// indexedItem holds an item with its index
type indexedItem[T any] struct {
	index int
	value T
}

// indexedResult holds a result with its index
type indexedResult[R any] struct {
	index  int
	result R
	err    error
}
