// Package syncrun runs asynchronous computations to completion on the calling
// goroutine.
//
// Some computations suspend and later resume via scheduled callbacks, called
// continuations.
// Left to themselves, those continuations resume on whatever goroutine happens
// to complete them: a timer goroutine, an I/O goroutine, and so on.
// Many environments forbid exactly that. A UI toolkit wants its widgets
// touched by one goroutine only; a single-threaded test harness wants
// deterministic ordering.
// This package lets a caller invoke such a computation, block until it
// finishes, and have every one of its continuations replayed in order on the
// very goroutine that made the call.
//
// # How It Works
//
// A driver run revolves around three pieces:
//
//   - A [Queue]: a thread-safe FIFO of continuations, drained by one consumer.
//   - A [Context]: the scheduling domain of the run. Scheduling on a Context
//     enqueues into its Queue instead of executing inline.
//   - A pump: the loop that dequeues and invokes continuations on the calling
//     goroutine until the Queue is closed and emptied.
//
// [Run] wires them together. It creates a Context, installs it as the ambient
// [Scheduler], invokes the computation inline, and pumps until the
// computation's [Future] completes. Goroutines elsewhere may call
// [Context.Schedule] at any time; the continuations they hand over are
// executed back on the driving goroutine, strictly in the order scheduled.
//
// # Fire And Forget
//
// An action with no [Future] to observe has no natural completion signal.
// [RunAction] infers one by operation counting: every asynchronous operation
// the action starts is bracketed by [CountedContext.OperationStarted] and
// [CountedContext.OperationCompleted], and when the count returns to zero the
// run is over. The driver brackets the initial call itself, so a purely
// synchronous action completes immediately.
//
// Clones of a [CountedContext] share one counter. The sharing is essential:
// independent counters would each see their own zero and close the run early.
//
// # No Cancellation
//
// A computation that never completes and never drives its operation count to
// zero blocks its driver forever. This is deliberate. Callers needing bounded
// waits should schedule a timeout continuation that forces completion.
//
// # Alternative Pumps
//
// The queue-backed pump is not the only possible backend. Any message loop
// with a "post to this loop" primitive can drive the same contract; the
// teapump subpackage does so with a Bubble Tea program loop.
//
// # Panics
//
// A panic raised by a pumped continuation stops the pump and is re-raised on
// the driving goroutine with the original panic value and stack preserved.
// Errors carried by a [Future] are returned verbatim, so errors.Is and
// errors.As observe the original failure.
package syncrun
