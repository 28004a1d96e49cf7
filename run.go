package syncrun

// Run drives an asynchronous computation to completion on the calling
// goroutine, and returns its result.
//
// Run creates a fresh [Context], installs it as the ambient [Scheduler], and
// calls computation with it. The computation starts executing inline; at each
// point where it would otherwise resume on another goroutine, it schedules
// a continuation on the Context instead. Run then pumps the Context's
// [Queue], invoking continuations on the calling goroutine in the order
// scheduled, until the returned [Future] completes and the Queue is emptied.
//
// If computation returns nil, the run is considered already complete; Run
// returns zero values without pumping.
//
// If the Future completed with an error, Run returns that error verbatim.
// The previously ambient Scheduler is reinstalled on every exit path,
// including when computation panics.
func Run[T any](computation func(ctx *Context) *Future[T]) (T, error) {
	ctx := NewContext()
	defer Install(ctx)()
	defer ctx.q.Close()

	f := computation(ctx)
	if f == nil {
		var zero T
		return zero, nil
	}

	f.OnDone(ctx.q.Close)
	Pump(ctx.q)

	return f.Result()
}

// RunAction drives a fire-and-forget asynchronous action to completion on
// the calling goroutine.
//
// An action has no [Future] to observe; completion is inferred by operation
// counting on a [CountedContext] instead. RunAction brackets the call to
// action with one started/completed pair of its own, so the count cannot
// reach a spurious zero before the action body has run, and the run still
// completes if the action never starts any operation.
//
// If action panics before returning, the panic propagates without any
// pumping. If a pumped continuation panics, the pump stops and the panic
// propagates with the continuation's stack preserved.
// In both cases the previously ambient [Scheduler] is reinstalled first.
func RunAction(action func(ctx *CountedContext)) {
	ctx := NewCountedContext()
	defer Install(ctx)()
	defer ctx.q.Close()

	ctx.OperationStarted()
	func() {
		defer ctx.OperationCompleted()
		action(ctx)
	}()

	Pump(ctx.q)
}

// Pump invokes every continuation of q on the calling goroutine, in FIFO
// order, until q is closed and emptied.
//
// Pump must not be called twice at the same time on the same Queue.
// A panic raised by a continuation stops the pump and is re-raised with the
// continuation's stack preserved.
func Pump(q *Queue) {
	for c := range q.Drain() {
		var tr panictrap
		if !tr.Catch(c.Invoke) {
			tr.Repanic()
		}
	}
}
