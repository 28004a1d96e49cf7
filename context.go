package syncrun

import "sync"

// A Scheduler accepts continuations for later execution on some designated
// goroutine.
//
// [Context] and [CountedContext] schedule into a [Queue]; a platform adapter
// may instead post into a native message loop.
type Scheduler interface {
	// Schedule hands over a continuation.
	// It must be safe for concurrent use and must not invoke f inline.
	Schedule(f func(any), state any)
}

// A Context is the scheduling domain of one driver run.
// Continuations scheduled on a Context are enqueued into its [Queue] rather
// than executed inline.
//
// A Context may be cloned any number of times as it propagates through
// a computation; all clones schedule into the same Queue.
type Context struct {
	q *Queue
}

// NewContext creates a Context with a fresh [Queue].
func NewContext() *Context {
	return &Context{q: new(Queue)}
}

// Schedule enqueues a continuation into the Queue of c.
//
// Schedule is safe to call from any goroutine; this is how work done
// elsewhere finds its way back to the driving goroutine.
// If the run has already completed, the continuation is silently dropped.
func (c *Context) Schedule(f func(any), state any) {
	c.q.Enqueue(f, state)
}

// Clone returns a new Context that schedules into the same [Queue] as c.
func (c *Context) Clone() *Context {
	return &Context{q: c.q}
}

// Queue returns the [Queue] that c schedules into.
func (c *Context) Queue() *Queue {
	return c.q
}

var ambient struct {
	mu      sync.Mutex
	current Scheduler
}

// Current returns the [Scheduler] installed by [Install], or nil if none is
// installed.
//
// Current exists for foreign, non-cooperative code that must discover where
// to post back to. Code invoked by a driver receives its [Context] as an
// argument and should use that instead.
func Current() Scheduler {
	ambient.mu.Lock()
	defer ambient.mu.Unlock()
	return ambient.current
}

// Install makes s the ambient [Scheduler] and returns a function that
// reinstalls whichever Scheduler was ambient before.
//
// The restore function must be called exactly once, on every exit path,
// including panicking ones:
//
//	defer Install(s)()
//
// Calling it a second time panics. Nested installs restore correctly as long
// as each pairs with its own restore.
func Install(s Scheduler) (restore func()) {
	ambient.mu.Lock()
	prev := ambient.current
	ambient.current = s
	ambient.mu.Unlock()

	var done bool
	return func() {
		if done {
			panic("syncrun: restore called twice")
		}
		done = true

		ambient.mu.Lock()
		ambient.current = prev
		ambient.mu.Unlock()
	}
}
