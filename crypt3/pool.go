package crypt3

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// PoolOptions sizes the worker pool behind the non-blocking operations.
type PoolOptions struct {
	// Workers bounds how many jobs run at once. Jobs beyond it wait their
	// turn in submission order; a submission never fails for lack of room.
	// Default: runtime.NumCPU().
	Workers int
}

// DefaultPoolOptions returns one worker per CPU.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{Workers: runtime.NumCPU()}
}

func (o PoolOptions) withDefaults() (PoolOptions, error) {
	if o.Workers == 0 {
		o.Workers = DefaultPoolOptions().Workers
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("%w: pool workers %d must not be negative", ErrInvalidOption, o.Workers)
	}
	return o, nil
}

type job func()

// pool runs each job on its own goroutine, at most Workers at a time.
type pool struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *slog.Logger
}

func newPool(opts PoolOptions, logger *slog.Logger) *pool {
	logger.Debug("crypt3: worker pool started", slog.Int("workers", opts.Workers))
	return &pool{
		sem:    semaphore.NewWeighted(int64(opts.Workers)),
		logger: logger,
	}
}

// submit schedules j. It only fails once the pool is stopped.
func (p *pool) submit(j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		// Acquire with a background context cannot fail.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		j()
	}()
	return nil
}

// stop rejects new jobs and waits for submitted ones to finish. It reports
// false when the pool was already stopped.
func (p *pool) stop() bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Debug("crypt3: worker pool stopped")
	return true
}
