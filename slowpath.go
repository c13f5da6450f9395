package rwsem

import (
	"time"
)

func (s *Sem) enterReadWait() {
	s.stats.readWaits.Add(1)
	s.enterWait(&waiter{mode: ReadWaiting}, 0)
}

func (s *Sem) enterWriteWait() {
	s.stats.writeWaits.Add(1)
	s.enterWait(&waiter{mode: WriteWaiting}, 0)
}

// enterWait queues w and blocks until it is granted the lock.
//
// adjustment undoes whatever the failed fast path left in the state word:
// zero for the CAS based fast path of Sem, -readerBias for a caller that
// optimistically incremented the reader count, and so on. The waiting bias
// is added here when w is the first waiter.
//
// A writer keeps trying to steal the lock while it waits: if the head of the
// queue is a writer and the lock is free, it takes the lock ahead of its own
// turn. Readers never steal, and a writer never steals past queued readers.
func (s *Sem) enterWait(w *waiter, adjustment int64) {
	var start time.Time
	if s.log != nil {
		start = time.Now()
		s.log.Debug("rwsem: waiting", "name", s.name, "mode", w.mode)
	}

	t := s.scheduler().Current()
	t.MarkBlocked()
	res := s.enqueue(w, t, adjustment)
	s.traceWake(res, false)

	stolen := false
	for !w.granted() {
		if w.mode == WriteWaiting {
			s.mu.lock()
			stolen = s.tryStealWrite(w)
			s.mu.unlock()
			if stolen {
				break
			}
		}
		t.Suspend()
		t.MarkBlocked()
	}
	if !stolen {
		t.MarkRunnable()
	}

	if s.log != nil {
		s.log.Debug("rwsem: acquired",
			"name", s.name,
			"mode", w.mode,
			"stolen", stolen,
			"waited", time.Since(start))
	}
}

// enqueue links w at the tail with t as its task and commits adjustment.
// If the lock turned out to be free, the head of the queue is woken right
// away: the holder we lost the fast path to may already have released
// without seeing us.
func (s *Sem) enqueue(w *waiter, t Task, adjustment int64) (res wakeResult) {
	s.mu.lock()
	w.task.Store(&t)
	if s.queue.empty() {
		adjustment += waitingBias
	}
	s.queue.pushBack(w)
	if v := s.state.add(adjustment); !hasActiveHolder(v) {
		res = s.wake(false)
	}
	s.mu.unlock()
	return
}

// tryStealWrite lets a waiting writer take the lock ahead of its turn when
// the head of the queue is a writer and nobody holds the lock. On success w
// is unlinked, its task cleared and marked runnable. s.mu must be held.
func (s *Sem) tryStealWrite(w *waiter) bool {
	if !w.linked {
		// Granted by the wake engine since the caller last looked.
		return false
	}
	if head := s.queue.front(); head.mode != WriteWaiting {
		return false
	}
	if !s.claimWrite(w) {
		return false
	}
	s.stats.steals.Add(1)
	w.handoff().MarkRunnable()
	return true
}
