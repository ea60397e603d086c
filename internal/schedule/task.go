// Package schedule runs cancellable periodic tasks on an injectable clock.
package schedule

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// TickFunc is invoked once per tick. Returning false halts the task.
type TickFunc func() bool

// Task is a running periodic task
type Task struct {
	ticker   *clock.Ticker
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Every starts a task that calls fn every interval until fn returns false
// or Cancel is called. A nil clock uses the wall clock.
func Every(clk clock.Clock, interval time.Duration, fn TickFunc) *Task {
	if clk == nil {
		clk = clock.New()
	}
	t := &Task{
		ticker: clk.Ticker(interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (t *Task) run(fn TickFunc) {
	defer close(t.done)
	defer t.ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			// Cancel may race a pending tick; stop wins.
			select {
			case <-t.stop:
				return
			default:
			}
			if !fn() {
				return
			}
		}
	}
}

// Cancel halts the task. It does not wait for an in-flight tick; callers that
// need that guarantee use Done. Safe to call more than once.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed once the task goroutine has exited
func (t *Task) Done() <-chan struct{} {
	return t.done
}
