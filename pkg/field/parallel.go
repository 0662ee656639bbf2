package field

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// ForEachRow calls fn once for every row in [0, height) from a pool of
// workers goroutines. If workers is not positive, runtime.NumCPU() is used.
//
// Rows are not started once ctx is done; rows already in progress finish.
// Returns ctx.Err() only if some row was never started.
func ForEachRow(ctx context.Context, height, workers int, fn func(y int)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}

	yChannel := make(chan int)

	go func() {
		defer close(yChannel)
		for y := 0; y < height; y++ {
			select {
			case yChannel <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	var done atomic.Int64
	ywg := sync.WaitGroup{}
	ywg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer ywg.Done()
			for y := range yChannel {
				if ctx.Err() != nil {
					continue
				}
				fn(y)
				done.Add(1)
			}
		}()
	}
	ywg.Wait()

	if done.Load() < int64(height) {
		return ctx.Err()
	}
	return nil
}

// ComputeParallel is Compute split across a pool of workers by row.
// Each worker writes a disjoint row of the result.
func ComputeParallel(ctx context.Context, spec ImageSpec, params RenderParams, workers int) ([]EscapeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Pixels() == 0 {
		return []EscapeResult{}, nil
	}

	results := make([]EscapeResult, spec.Pixels())
	err := ForEachRow(ctx, spec.Height, workers, func(y int) {
		computeRow(spec, params, y, results[y*spec.Width:(y+1)*spec.Width])
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}
