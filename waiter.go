package rwsem

import (
	"sync/atomic"
)

// Mode tags what a queued waiter is waiting for.
type Mode uint8

const (
	ReadWaiting Mode = iota + 1
	WriteWaiting
)

func (m Mode) String() string {
	switch m {
	case ReadWaiting:
		return "read"
	case WriteWaiting:
		return "write"
	default:
		return "invalid"
	}
}

// waiter describes one blocked acquire request.
//
// It is owned by the blocked call for the duration of the call. The queue
// only holds a back reference, which the granter drops when it unlinks it.
type waiter struct {
	mode Mode
	// task is set under the queue lock before the waiter is linked, and
	// cleared exactly once by whoever grants the lock. The blocked goroutine
	// polls it to learn it has been granted.
	task atomic.Pointer[Task]

	// protected by Sem.mu
	prev, next *waiter
	linked     bool
}

func (w *waiter) granted() bool {
	return w.task.Load() == nil
}

// handoff clears the task reference and returns it. w must not be touched
// by the granter afterwards: the blocked call may return and drop it.
func (w *waiter) handoff() Task {
	t := w.task.Swap(nil)
	if t == nil {
		panic("rwsem: waiter granted twice")
	}
	return *t
}

// waitQueue is an intrusive FIFO of waiters, protected by Sem.mu.
type waitQueue struct {
	head, tail *waiter
	n          int
}

func (q *waitQueue) empty() bool {
	return q.head == nil
}

func (q *waitQueue) front() *waiter {
	return q.head
}

// singular reports whether w is the only queued waiter.
func (q *waitQueue) singular(w *waiter) bool {
	return q.head == w && q.tail == w
}

func (q *waitQueue) pushBack(w *waiter) {
	if w.linked {
		panic("rwsem: waiter queued twice")
	}
	w.linked = true
	w.next = nil
	w.prev = q.tail
	if q.tail == nil {
		q.head = w
	} else {
		q.tail.next = w
	}
	q.tail = w
	q.n++
}

func (q *waitQueue) remove(w *waiter) {
	if !w.linked {
		panic("rwsem: waiter unlinked twice")
	}
	if w.prev == nil {
		if q.head != w {
			panic("rwsem: wait queue corrupted")
		}
		q.head = w.next
	} else {
		w.prev.next = w.next
	}
	if w.next == nil {
		if q.tail != w {
			panic("rwsem: wait queue corrupted")
		}
		q.tail = w.prev
	} else {
		w.next.prev = w.prev
	}
	w.prev, w.next = nil, nil
	w.linked = false
	q.n--
}

// modes returns the queued modes from head to tail.
func (q *waitQueue) modes() []Mode {
	out := make([]Mode, 0, q.n)
	for w := q.head; w != nil; w = w.next {
		out = append(out, w.mode)
	}
	return out
}
