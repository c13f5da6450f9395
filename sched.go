package rwsem

import (
	"sync/atomic"

	"github.com/llxisdsh/rwsem/internal/opt"
)

// Task is the execution context of a goroutine blocked in the slow path.
//
// The slow path follows the classic sleep/wakeup protocol: the goroutine
// marks itself blocked, publishes the Task, re-checks its condition and only
// then suspends. Wake must therefore be sticky: a Wake that lands between
// MarkBlocked and Suspend makes the following Suspend return immediately.
type Task interface {
	// MarkBlocked speculatively marks the calling goroutine as not runnable.
	MarkBlocked()
	// MarkRunnable marks the calling goroutine as runnable again.
	MarkRunnable()
	// Suspend parks the calling goroutine unless it was woken since the last
	// MarkBlocked.
	Suspend()
	// Wake makes the task runnable and resumes it if it is suspended. It is
	// called by other goroutines.
	Wake()
}

// Scheduler hands out the Task of the calling goroutine.
type Scheduler interface {
	Current() Task
}

// Goroutines is the default Scheduler. Each blocked call gets its own parker
// backed by a runtime semaphore.
var Goroutines Scheduler = goroutines{}

type goroutines struct{}

func (goroutines) Current() Task {
	return &parker{}
}

const (
	taskRunning uint32 = iota
	taskBlocked
	taskSleeping
)

// parker is a one-shot sleep/wakeup cell. The semaphore is only released
// when the owner is actually sleeping on it, so no stale permit survives a
// wakeup that raced with MarkBlocked.
type parker struct {
	state atomic.Uint32
	sema  opt.Sema
}

func (p *parker) MarkBlocked() {
	p.state.Store(taskBlocked)
}

func (p *parker) MarkRunnable() {
	p.state.Store(taskRunning)
}

func (p *parker) Suspend() {
	if p.state.CompareAndSwap(taskBlocked, taskSleeping) {
		p.sema.Acquire()
	}
}

func (p *parker) Wake() {
	for {
		switch s := p.state.Load(); s {
		case taskRunning:
			return
		case taskBlocked:
			if p.state.CompareAndSwap(s, taskRunning) {
				return
			}
		case taskSleeping:
			if p.state.CompareAndSwap(s, taskRunning) {
				p.sema.Release()
				return
			}
		}
	}
}
