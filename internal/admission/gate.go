// Package admission bounds how many compilation jobs run at once.
//
// A Gate hands out a fixed number of slots. Waiters are served in arrival
// order, so a steady stream of small requests cannot starve an earlier one.
package admission

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate sizing bounds for ResolveSize.
const (
	MinSize = 1
	MaxSize = 8

	// cpuDivisor leaves headroom for the compiler's own CPU use.
	cpuDivisor = 2
)

// Gate is a counting admission gate with a capacity fixed at construction.
type Gate struct {
	size  int64
	sem   *semaphore.Weighted
	inUse atomic.Int64
}

// NewGate returns a Gate with n slots; n below 1 is raised to 1.
func NewGate(n int) *Gate {
	if n < MinSize {
		n = MinSize
	}
	return &Gate{size: int64(n), sem: semaphore.NewWeighted(int64(n))}
}

// Acquire blocks until a slot is free or ctx is done. On error no slot is
// held.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.inUse.Add(1)
	return nil
}

// Release frees one slot. It must be called exactly once per successful
// Acquire; releasing more than was acquired panics.
func (g *Gate) Release() {
	g.inUse.Add(-1)
	g.sem.Release(1)
}

// Do runs fn while holding a slot. The slot is released when fn returns or
// panics.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.Acquire(ctx); err != nil {
		return err
	}
	defer g.Release()
	return fn()
}

// Size returns the gate capacity.
func (g *Gate) Size() int {
	return int(g.size)
}

// InUse returns the number of slots currently held.
func (g *Gate) InUse() int {
	return int(g.inUse.Load())
}

// ResolveSize picks the gate capacity. An explicit positive workers value
// wins; otherwise half of GOMAXPROCS, clamped to [MinSize, MaxSize].
func ResolveSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}
