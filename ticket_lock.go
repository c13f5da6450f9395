package rwsem

import (
	"sync/atomic"
)

// ticketLock is the queue lock of a Sem: a fair, FIFO spin-lock.
//
// Goroutines take the lock in the exact order they called lock(), so a
// stream of releasers cannot starve a waiter that is trying to enqueue.
//
// Critical sections under it are short and never park: a goroutine must not
// suspend while holding it. Spinning falls back to the adaptive delay, which
// bounds the cost when the holder was descheduled.
type ticketLock struct {
	next    atomic.Uint32
	serving atomic.Uint32
}

func (m *ticketLock) lock() {
	my := m.next.Add(1) - 1
	var spins int
	for m.serving.Load() != my {
		delay(&spins)
	}
}

func (m *ticketLock) unlock() {
	m.serving.Add(1)
}

// held reports whether some goroutine owns the lock. It is only meaningful
// as an assertion made by the owner itself.
func (m *ticketLock) held() bool {
	return m.next.Load() != m.serving.Load()
}
