package services

import "context"

// Task is the result of an operation running on its own goroutine.
// It resolves exactly once.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn and returns a task that resolves with its result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Done is closed once the task has resolved.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task resolves or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel does nothing. A started operation always runs to completion;
// cancel the context passed to Go to stop the underlying store calls.
func (t *Task[T]) Cancel() {}
