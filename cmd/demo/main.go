// Command demo exercises the syncrun drivers: a future-returning computation
// and a fire-and-forget batch over the queue-backed pump, then the same
// computation again over the Bubble Tea pump.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/b97tsk/syncrun"
	"github.com/b97tsk/syncrun/teapump"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

func main() {
	var (
		verbose = flag.Bool("v", false, "Enable debug logging")
		workers = flag.Int("workers", 4, "Workers for the fire-and-forget batch")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		syncrun.SetLogger(logger)
	}

	fmt.Println(headerStyle.Render("syncrun demo"))

	fmt.Println(stepStyle.Render("\nRun: timer-driven computation"))
	v, err := syncrun.Run(timed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(resultStyle.Render(fmt.Sprintf("result: %d", v)))

	fmt.Println(stepStyle.Render("\nRunAction: fan-in batch"))
	total := 0
	syncrun.RunAction(func(ctx *syncrun.CountedContext) {
		for i := 1; i <= *workers; i++ {
			ctx.OperationStarted()
			go func() {
				// Pretend to work elsewhere, then report back on the
				// driving goroutine.
				time.Sleep(time.Duration(i) * 10 * time.Millisecond)
				ctx.Schedule(func(n any) {
					total += n.(int)
					fmt.Println("worker", n, "reported")
					ctx.OperationCompleted()
				}, i)
			}()
		}
	})
	fmt.Println(resultStyle.Render(fmt.Sprintf("total: %d", total)))

	fmt.Println(stepStyle.Render("\nteapump.Run: same computation, Bubble Tea loop"))
	v, err = teapump.Run(func(s *teapump.Poster) *syncrun.Future[int] {
		f := syncrun.NewFuture[int]()
		time.AfterFunc(50*time.Millisecond, func() {
			s.Schedule(func(n any) { f.Complete(n.(int) * 2) }, 21)
		})
		return f
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(resultStyle.Render(fmt.Sprintf("result: %d", v)))
}

// timed completes its future from a timer goroutine, routing the completion
// through the run's context so it executes on the driving goroutine.
func timed(ctx *syncrun.Context) *syncrun.Future[int] {
	f := syncrun.NewFuture[int]()
	time.AfterFunc(50*time.Millisecond, func() {
		ctx.Schedule(func(n any) { f.Complete(n.(int) * 2) }, 21)
	})
	return f
}
