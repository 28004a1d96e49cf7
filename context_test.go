package syncrun_test

import (
	"testing"

	"github.com/b97tsk/syncrun"
)

func TestContextSchedule(t *testing.T) {
	ctx := syncrun.NewContext()

	ran := false
	ctx.Schedule(func(v any) { ran = v.(bool) }, true)

	// Scheduling must enqueue, never execute inline.
	if ran {
		t.Error("Schedule executed the continuation inline.")
	}

	ctx.Queue().Close()
	for c := range ctx.Queue().Drain() {
		c.Invoke()
	}
	if !ran {
		t.Error("The scheduled continuation did not run when drained.")
	}
}

func TestContextCloneSharesQueue(t *testing.T) {
	ctx := syncrun.NewContext()
	clone := ctx.Clone()

	if ctx.Queue() != clone.Queue() {
		t.Error("A clone must schedule into the same queue as its origin.")
	}

	var order []int
	ctx.Schedule(func(v any) { order = append(order, v.(int)) }, 1)
	clone.Schedule(func(v any) { order = append(order, v.(int)) }, 2)
	ctx.Queue().Close()

	for c := range ctx.Queue().Drain() {
		c.Invoke()
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Continuations from clones interleaved incorrectly: %v.", order)
	}
}

func TestInstallRestore(t *testing.T) {
	if syncrun.Current() != nil {
		t.Fatal("An ambient scheduler is installed before any install.")
	}

	a := syncrun.NewContext()
	restoreA := syncrun.Install(a)

	if syncrun.Current() != syncrun.Scheduler(a) {
		t.Error("Current did not report the installed scheduler.")
	}

	b := syncrun.NewContext()
	restoreB := syncrun.Install(b)

	if syncrun.Current() != syncrun.Scheduler(b) {
		t.Error("A nested install did not take effect.")
	}

	restoreB()
	if syncrun.Current() != syncrun.Scheduler(a) {
		t.Error("Restoring a nested install did not reinstate the outer scheduler.")
	}

	restoreA()
	if syncrun.Current() != nil {
		t.Error("Restoring the outer install did not reinstate the prior state.")
	}
}

func TestRestoreTwicePanics(t *testing.T) {
	restore := syncrun.Install(syncrun.NewContext())
	restore()

	defer func() {
		if recover() == nil {
			t.Error("Calling restore twice did not panic.")
		}
	}()
	restore()
}
