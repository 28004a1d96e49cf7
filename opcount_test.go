package syncrun_test

import (
	"sync"
	"testing"

	"github.com/b97tsk/syncrun"
)

func TestOperationCounterFiresAtZero(t *testing.T) {
	fired := 0
	c := syncrun.NewOperationCounter(func() { fired++ })

	c.Started()
	c.Started()
	c.Completed()
	if fired != 0 {
		t.Error("The completion function ran before the count returned to zero.")
	}
	c.Completed()
	if fired != 1 {
		t.Errorf("The completion function ran %d times; want 1.", fired)
	}
}

func TestOperationCounterFiresOnce(t *testing.T) {
	fired := 0
	c := syncrun.NewOperationCounter(func() { fired++ })

	c.Started()
	c.Completed()
	c.Started()
	c.Completed()

	if fired != 1 {
		t.Errorf("The completion function ran %d times; want 1.", fired)
	}
}

func TestOperationCounterNegativePanics(t *testing.T) {
	c := syncrun.NewOperationCounter(func() {})
	c.Started()
	c.Completed()

	defer func() {
		if recover() == nil {
			t.Error("An unmatched Completed did not panic.")
		}
	}()
	c.Completed()
}

func TestOperationCounterConcurrent(t *testing.T) {
	fired := 0
	c := syncrun.NewOperationCounter(func() { fired++ })

	const n = 100
	c.Started() // Bracket, so concurrent completions cannot zero-cross early.

	var wg sync.WaitGroup
	for range n {
		c.Started()
		wg.Go(c.Completed)
	}
	wg.Wait()
	c.Completed()

	if fired != 1 {
		t.Errorf("The completion function ran %d times; want 1.", fired)
	}
}

func TestCountedContextClosesQueueAtZero(t *testing.T) {
	ctx := syncrun.NewCountedContext()

	ctx.OperationStarted()
	ctx.Schedule(func(any) {}, nil)
	ctx.OperationCompleted()

	// The queue must now be closed: draining terminates after the backlog.
	n := 0
	for c := range ctx.Queue().Drain() {
		c.Invoke()
		n++
	}
	if n != 1 {
		t.Errorf("Drained %d continuations; want 1.", n)
	}
}

func TestCountedContextCloneSharesCounter(t *testing.T) {
	ctx := syncrun.NewCountedContext()
	clone := ctx.Clone()

	if ctx.Queue() != clone.Queue() {
		t.Error("A clone must schedule into the same queue as its origin.")
	}

	// Start on the origin, complete on the clone. Only a shared counter
	// reaches zero here; independent copies would underflow or never close.
	ctx.OperationStarted()
	clone.OperationCompleted()

	n := 0
	for range ctx.Queue().Drain() {
		n++
	}
	if n != 0 {
		t.Errorf("Drained %d continuations; want 0.", n)
	}
}
