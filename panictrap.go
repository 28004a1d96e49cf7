package syncrun

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// A panictrap captures a panic raised by a pumped continuation so that it
// can be re-raised on the driving goroutine with the original value and
// stack intact.
type panictrap struct {
	value  any
	stack  []byte
	caught bool
}

// Catch runs f, capturing any panic into tr.
func (tr *panictrap) Catch(f func()) (ok bool) {
	defer func() {
		if !ok {
			v := recover()
			if v == nil {
				panic("syncrun: syncrun does not support runtime.Goexit()")
			}
			tr.value = v
			tr.stack = debug.Stack()
			tr.caught = true
		}
	}()
	f()
	return true
}

// Repanic re-raises the captured panic, if any.
func (tr *panictrap) Repanic() {
	if tr.caught {
		panic(&panicvalue{value: tr.value, stack: tr.stack})
	}
}

// A panicvalue is what a pump panics with when a continuation panicked.
// It implements error; its message carries the continuation's stack, and
// Unwrap exposes the original error, if the panic value was one.
type panicvalue struct {
	value any
	stack []byte
}

func (pv *panicvalue) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "panic: %v", pv.value)
	if pv.stack != nil {
		b.WriteString("\n\n")
		b.Write(pv.stack)
	}
	return b.String()
}

func (pv *panicvalue) Unwrap() error {
	if err, ok := pv.value.(error); ok {
		return err
	}
	return nil
}
