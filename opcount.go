package syncrun

import "sync/atomic"

// An OperationCounter tracks the number of outstanding asynchronous
// operations of a fire-and-forget run.
//
// When the count returns to zero, the completion function given to
// [NewOperationCounter] runs, exactly once, on whichever goroutine performed
// the final [OperationCounter.Completed].
//
// An OperationCounter is updated atomically; no external locking is required
// around it.
type OperationCounter struct {
	n     atomic.Int64
	fired atomic.Bool
	done  func()
}

// NewOperationCounter creates an [OperationCounter] that calls done when the
// count returns to zero.
func NewOperationCounter(done func()) *OperationCounter {
	return &OperationCounter{done: done}
}

// Started records that an asynchronous operation has begun.
// Every call must be matched by exactly one [OperationCounter.Completed].
func (c *OperationCounter) Started() {
	c.n.Add(1)
}

// Completed records that an operation previously recorded by Started has
// finished. If the count returns to zero, the completion function runs.
// If the count becomes negative, Completed panics.
func (c *OperationCounter) Completed() {
	switch n := c.n.Add(-1); {
	case n < 0:
		panic("syncrun(OperationCounter): negative operation count")
	case n == 0:
		if c.fired.CompareAndSwap(false, true) {
			logger().Debug("syncrun: operation count reached zero")
			c.done()
		}
	}
}

// A CountedContext is a [Context] that infers completion of its run by
// operation counting: when every operation that was ever started has also
// completed, the Queue closes and the run is over.
//
// Clones of a CountedContext share one counter, not copies of it.
// The shared identity is what makes zero detection work; independent
// counters would each see their own zero and close the run early.
type CountedContext struct {
	Context
	ops *OperationCounter
}

// NewCountedContext creates a CountedContext with a fresh [Queue], closed
// when the operation count returns to zero.
func NewCountedContext() *CountedContext {
	c := &CountedContext{Context: Context{q: new(Queue)}}
	c.ops = NewOperationCounter(c.q.Close)
	return c
}

// OperationStarted records that an asynchronous operation has begun.
// Every call must be matched by exactly one
// [CountedContext.OperationCompleted].
func (c *CountedContext) OperationStarted() {
	c.ops.Started()
}

// OperationCompleted records that an operation previously recorded by
// OperationStarted has finished. When the count returns to zero, the Queue
// of c closes and the run completes.
func (c *CountedContext) OperationCompleted() {
	c.ops.Completed()
}

// Clone returns a new CountedContext sharing both the [Queue] and the
// [OperationCounter] of c.
func (c *CountedContext) Clone() *CountedContext {
	return &CountedContext{Context: c.Context, ops: c.ops}
}
