package mathjax

// Notes:
// - forEachChapter: we test completeness and cancellation; scheduling order is
//   unspecified and not asserted.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveWorkers - Worker count resolution
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit 1", 1, 1},
		{"explicit 4", 4, 4},
		{"explicit at max", MaxWorkers, MaxWorkers},
		{"explicit above max is capped", MaxWorkers + 10, MaxWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers_Auto(t *testing.T) {
	t.Parallel()

	want := min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
	if got := ResolveWorkers(0); got != want {
		t.Errorf("ResolveWorkers(0) = %d, want %d", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestForEachChapter - Worker pool
// ---------------------------------------------------------------------------

func TestForEachChapter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		workers int
	}{
		{"no chapters", 0, 4},
		{"single worker", 10, 1},
		{"more workers than chapters", 3, 8},
		{"many chapters", 500, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seen := make([]atomic.Int32, tt.n)
			err := forEachChapter(context.Background(), tt.n, tt.workers, func(idx int) {
				seen[idx].Add(1)
			})
			if err != nil {
				t.Fatalf("forEachChapter() error = %v", err)
			}
			for i := range seen {
				if c := seen[i].Load(); c != 1 {
					t.Errorf("index %d visited %d times, want 1", i, c)
				}
			}
		})
	}
}

func TestForEachChapter_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := forEachChapter(ctx, 20, 4, func(int) { calls.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("forEachChapter() error = %v, want context.Canceled", err)
	}
	if c := calls.Load(); c != 0 {
		t.Errorf("fn called %d times after cancellation, want 0", c)
	}
}

func TestForEachChapter_CanceledMidway(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	err := forEachChapter(ctx, 100, 1, func(int) {
		if calls.Add(1) == 5 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("forEachChapter() error = %v, want context.Canceled", err)
	}
	if c := calls.Load(); c != 5 {
		t.Errorf("fn called %d times, want 5 with a single worker", c)
	}
}
