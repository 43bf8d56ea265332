package call

import (
	"context"
	"sync"
)

// Future is the pending result of a non-blocking call. It is resolved or
// rejected once; completions after the first are ignored.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future is resolved or rejected.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get waits for the result or for ctx to end. Giving up through ctx only stops
// the caller from observing the result, the remote call keeps running.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the future is resolved or rejected.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Map returns a future holding fn applied to the value of f. A rejection of f
// is propagated without calling fn, and an error from fn rejects the result.
// The mapping goroutine lives until f completes; futures created by
// UnaryAsyncCall complete once the transport invokes its completion handle,
// which every stub does exactly once per call.
func Map[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	mapped := newFuture[U]()

	go func() {
		value, err := f.Wait()
		if err != nil {
			var zero U
			mapped.complete(zero, err)
			return
		}

		mapped.complete(fn(value))
	}()

	return mapped
}
