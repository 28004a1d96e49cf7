// Package teapump drives syncrun computations with a Bubble Tea program loop
// in place of the queue-backed pump.
//
// The calling goroutine runs the program, so every continuation still
// executes on it; the program's Send method serves as the native "post to
// this loop"
// primitive, and the program's update function serves as the loop body.
// [Run] and [RunAction] keep the semantics of their syncrun counterparts,
// including the install/restore discipline on the ambient scheduler.
//
// The program runs without a renderer and without input; it is a message
// loop, not a user interface. Embedders that already own a running program
// can instead post continuations through a [Poster] of their own.
package teapump

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/b97tsk/syncrun"
)

type startMsg struct{}

type continuationMsg struct {
	f     func(any)
	state any
}

type quitMsg struct{}

// model is the headless Bubble Tea model that serves as the pump.
// start runs the computation on the loop goroutine once the loop is up.
type model struct {
	start func()
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.start()
	case continuationMsg:
		msg.f(msg.state)
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string { return "" }

// A Poster posts continuations into a running Bubble Tea program.
// It implements [syncrun.Scheduler].
type Poster struct {
	p   *tea.Program
	ops *syncrun.OperationCounter
}

// NewPoster wraps an already-running program owned by the embedder.
// Continuations scheduled on the returned Poster are executed by the
// program's own update loop; the embedder's model must not consume messages
// of this package. Most callers want [Run] or [RunAction] instead.
func NewPoster(p *tea.Program) *Poster {
	return &Poster{p: p}
}

// Schedule posts a continuation to the program loop.
// It is safe to call from any goroutine.
func (s *Poster) Schedule(f func(any), state any) {
	s.p.Send(continuationMsg{f, state})
}

// OperationStarted records that an asynchronous operation has begun.
// It is valid only within a [RunAction] run.
func (s *Poster) OperationStarted() {
	s.ops.Started()
}

// OperationCompleted records that an operation previously recorded by
// OperationStarted has finished. When the count returns to zero, the loop
// quits and the run completes.
func (s *Poster) OperationCompleted() {
	s.ops.Completed()
}

func newProgram(start func()) *tea.Program {
	return tea.NewProgram(
		model{start: start},
		tea.WithoutRenderer(),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutCatchPanics(),
	)
}

// quit asks the loop to stop. The Send happens on a fresh goroutine, so
// completions arising inside the loop itself cannot deadlock on the message
// channel.
func (s *Poster) quit() {
	go s.p.Send(quitMsg{})
}

// Run drives an asynchronous computation to completion on the calling
// goroutine, pumping a Bubble Tea program loop instead of a [syncrun.Queue].
//
// The semantics match [syncrun.Run]: the computation starts on the calling
// goroutine once the loop is up, continuations posted from any goroutine are
// executed back on it in arrival order, a nil [syncrun.Future] means already
// complete, and a failed Future's error is returned verbatim.
// Run additionally returns an error if the program loop itself fails to run.
func Run[T any](computation func(s *Poster) *syncrun.Future[T]) (T, error) {
	var s Poster
	var f *syncrun.Future[T]

	s.p = newProgram(func() {
		f = computation(&s)
		if f == nil {
			s.quit()
			return
		}
		f.OnDone(s.quit)
	})

	defer syncrun.Install(&s)()

	if _, err := s.p.Run(); err != nil {
		var zero T
		return zero, err
	}

	if f == nil {
		var zero T
		return zero, nil
	}
	return f.Result()
}

// RunAction drives a fire-and-forget asynchronous action to completion on
// the calling goroutine, pumping a Bubble Tea program loop.
//
// The semantics match [syncrun.RunAction]: completion is inferred by
// operation counting, and the call to action is bracketed by one
// started/completed pair of its own.
// RunAction returns an error only if the program loop fails to run.
func RunAction(action func(s *Poster)) error {
	var s Poster
	s.ops = syncrun.NewOperationCounter(s.quit)

	s.p = newProgram(func() {
		s.OperationStarted()
		defer s.OperationCompleted()
		action(&s)
	})

	defer syncrun.Install(&s)()

	_, err := s.p.Run()
	return err
}
