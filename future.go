package syncrun

import "sync"

// A Future is the handle to the eventual result of an asynchronous
// computation.
//
// A Future completes at most once, with either a value ([Future.Complete]) or
// an error ([Future.Fail]). Completing it a second time panics.
//
// The zero value is an incomplete Future ready for use.
type Future[T any] struct {
	mu    sync.Mutex
	done  bool
	value T
	err   error
	cbs   []func()
}

// NewFuture creates an incomplete [Future].
func NewFuture[T any]() *Future[T] {
	return new(Future[T])
}

// Complete completes f with v.
// Complete panics if f has already completed.
func (f *Future[T]) Complete(v T) {
	f.settle(v, nil)
}

// Fail completes f with err.
// The error is later surfaced verbatim to the [Run] caller, so that errors.Is
// and errors.As observe the original failure.
// Fail panics if f has already completed.
func (f *Future[T]) Fail(err error) {
	var zero T
	f.settle(zero, err)
}

func (f *Future[T]) settle(v T, err error) {
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()
		panic("syncrun: future completed twice")
	}
	f.done = true
	f.value, f.err = v, err
	cbs := f.cbs
	f.cbs = nil
	f.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
}

// OnDone registers fn to run once f completes, on whichever goroutine
// completes f. If f has already completed, fn runs inline.
//
// The driver uses OnDone to close the run's [Queue]; computations may use it
// to chain work of their own.
func (f *Future[T]) OnDone(fn func()) {
	f.mu.Lock()
	if !f.done {
		f.cbs = append(f.cbs, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	fn()
}

// Done reports whether f has completed.
func (f *Future[T]) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Result returns the value or error that f completed with.
// Result does not block; before completion it returns zero values.
func (f *Future[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}
