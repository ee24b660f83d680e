package crypt3

import (
	"context"
	"sync"
)

// Future is the result of a non-blocking operation. It resolves exactly once,
// with either a value or an error.
//
// A Future is safe for concurrent use; any number of goroutines may wait on it.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	val       T
	err       error
	callbacks []func(T, error)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// failedFuture returns a Future already resolved with err.
func failedFuture[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.resolve(zero, err)
	return f
}

// Done returns a channel that is closed once the Future has resolved.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Result blocks until the Future resolves and returns its outcome.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Wait is like [Future.Result] but gives up when ctx is done. Giving up does
// not cancel the underlying work.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// resolve settles the Future. Later calls are ignored.
func (f *Future[T]) resolve(val T, err error) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return
	}
	f.resolved = true
	f.val, f.err = val, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(val, err)
	}
}

// then registers fn to run once with the outcome. It runs on the resolving
// goroutine, or immediately on the caller's goroutine when the Future has
// already resolved.
func (f *Future[T]) then(fn func(T, error)) {
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	fn(f.val, f.err)
}
