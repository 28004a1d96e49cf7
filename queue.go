package syncrun

import (
	"iter"
	"sync"
)

// A Continuation is a callback paired with the state it is to be invoked
// with. Continuations are created by [Context.Schedule] and consumed by
// a pump.
type Continuation struct {
	f     func(any)
	state any
}

// Invoke calls the callback with its state.
func (c Continuation) Invoke() {
	c.f(c.state)
}

// A Queue is an unbounded FIFO of continuations.
//
// Any goroutine may append to a Queue, but one and only one goroutine must
// drain a given Queue per run.
//
// Once closed, a Queue stays closed. Closing again has no effect, and
// appending to a closed Queue silently drops the continuation; neither is
// an error.
//
// The zero value is ready for use.
type Queue struct {
	mu     sync.Mutex
	more   sync.Cond
	items  []Continuation
	closed bool
}

// Callers must hold q.mu.
func (q *Queue) init() {
	if q.more.L == nil {
		q.more.L = &q.mu
	}
}

// Enqueue appends a continuation to q.
//
// Enqueue never fails. If q has been closed, the continuation is dropped,
// because a completed run must never execute a stray continuation.
//
// Enqueue is safe for concurrent use.
func (q *Queue) Enqueue(f func(any), state any) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		logger().Debug("syncrun: continuation dropped after close")
		return
	}
	q.init()
	q.items = append(q.items, Continuation{f, state})
	q.more.Signal()
	q.mu.Unlock()
}

// Close marks q closed, waking a blocked [Queue.Dequeue].
// Continuations already enqueued remain dequeuable; only the blocking stops.
//
// Close is idempotent and safe for concurrent use.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.init()
		q.more.Broadcast()
	}
	q.mu.Unlock()
}

// Dequeue removes and returns the oldest continuation of q.
// It blocks while q is empty but not closed.
// Once q is closed and emptied, Dequeue returns with ok being false.
func (q *Queue) Dequeue() (c Continuation, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.init()

	for len(q.items) == 0 && !q.closed {
		q.more.Wait()
	}

	if len(q.items) == 0 {
		return Continuation{}, false
	}

	c = q.items[0]
	q.items[0] = Continuation{} // Drop the reference so it can be collected.
	q.items = q.items[1:]

	if len(q.items) == 0 {
		q.items = nil
	}

	return c, true
}

// Drain returns an iterator over the continuations of q, in FIFO order.
// The iterator blocks while q is momentarily empty, and terminates once q is
// closed and emptied.
//
// Drain is the single blocking point of a driver run; it is where the calling
// goroutine spends its time pumping.
func (q *Queue) Drain() iter.Seq[Continuation] {
	return func(yield func(Continuation) bool) {
		for {
			c, ok := q.Dequeue()
			if !ok || !yield(c) {
				return
			}
		}
	}
}
