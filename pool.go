package mathjax

import (
	"context"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one chapter is rewritten at a time.
	MinWorkers = 1

	// MaxWorkers caps goroutines; rewriting is CPU bound and chapters are small.
	MaxWorkers = 16
)

// ResolveWorkers determines the number of chapter workers.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// forEachChapter runs fn for every index in [0, n) on up to workers goroutines.
// Indexes not yet started when ctx is canceled are skipped.
func forEachChapter(ctx context.Context, n, workers int, fn func(idx int)) error {
	if n == 0 {
		return ctx.Err()
	}

	concurrency := min(workers, n)

	var wg sync.WaitGroup
	jobs := make(chan int, n)

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				fn(idx)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return ctx.Err()
}
