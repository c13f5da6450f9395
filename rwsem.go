// Package rwsem provides Sem, a reader/writer semaphore with a queued slow
// path, writer lock stealing and write-to-read downgrading.
//
// Uncontended acquisitions and releases are a single atomic operation on a
// 64-bit state word. Contended callers queue in arrival order and park;
// releases hand the lock to the head of the queue, granting every contiguous
// reader at the head in one step. A waiting writer may take the lock ahead
// of an earlier queued writer when the lock happens to be free ("stealing").
package rwsem

import (
	"log/slog"
	"sync"

	"github.com/llxisdsh/rwsem/internal/opt"
)

// Sem is a reader/writer semaphore.
//
// Any number of readers or a single writer may hold it. It is not
// reentrant: a goroutine holding it must not acquire it again. Unlike
// sync.RWMutex, the exclusive hold may be turned into a shared hold with
// Downgrade.
//
// The zero value is an unlocked Sem using the Goroutines scheduler.
// A Sem must not be copied after first use.
type Sem struct {
	_     noCopy
	state stateWord
	_     opt.Pad_

	// mu guards queue and every waiter's queue membership.
	mu    ticketLock
	queue waitQueue

	name  string
	sched Scheduler
	log   *slog.Logger
	stats counters
}

func (s *Sem) scheduler() Scheduler {
	if s.sched == nil {
		return Goroutines
	}
	return s.sched
}

// RLock locks s for reading.
//
// It does not wait while the lock is free or read-held and nobody is
// queued. Once a waiter is queued, new readers queue behind it.
func (s *Sem) RLock() {
	for {
		v := s.state.load()
		if hasWaiters(v) || active(v) >= writerBias {
			s.enterReadWait()
			return
		}
		if active(v) == maxReaders {
			panic("rwsem: reader count overflow")
		}
		if s.state.cas(v, v+readerBias) {
			return
		}
	}
}

// TryRLock tries to lock s for reading and reports whether it succeeded.
func (s *Sem) TryRLock() bool {
	for {
		v := s.state.load()
		if hasWaiters(v) || active(v) >= writerBias {
			return false
		}
		if active(v) == maxReaders {
			panic("rwsem: reader count overflow")
		}
		if s.state.cas(v, v+readerBias) {
			return true
		}
	}
}

// RUnlock undoes a single RLock call.
func (s *Sem) RUnlock() {
	v := s.state.add(-readerBias)
	if old := active(v + readerBias); old == 0 || old == writerBias {
		panic("rwsem: RUnlock of unlocked Sem")
	}
	if hasWaiters(v) && !hasActiveHolder(v) {
		s.wakeOnRelease()
	}
}

// Lock locks s for writing.
func (s *Sem) Lock() {
	if s.state.cas(0, writerBias) {
		return
	}
	s.enterWriteWait()
}

// TryLock tries to lock s for writing and reports whether it succeeded.
func (s *Sem) TryLock() bool {
	return s.state.cas(0, writerBias)
}

// Unlock unlocks s for writing.
func (s *Sem) Unlock() {
	v := s.state.add(-writerBias)
	if active(v+writerBias) < writerBias {
		panic("rwsem: Unlock of unlocked Sem")
	}
	if hasWaiters(v) && !hasActiveHolder(v) {
		s.wakeOnRelease()
	}
}

// Downgrade atomically turns the write lock held by the caller into a read
// lock. Readers queued at the head are released with it; a queued writer
// stays queued until the last reader leaves.
func (s *Sem) Downgrade() {
	v := s.state.add(readerBias - writerBias)
	if active(v-readerBias+writerBias) < writerBias {
		panic("rwsem: Downgrade of non-write-locked Sem")
	}
	if hasWaiters(v) {
		s.wakeOnDowngrade()
	}
}

// IsLocked reports whether s is held in either mode. The answer may be
// stale by the time it is returned.
func (s *Sem) IsLocked() bool {
	return hasActiveHolder(s.state.load())
}

// RLocker returns a sync.Locker that locks and unlocks s for reading.
func (s *Sem) RLocker() sync.Locker {
	return (*rlocker)(s)
}

type rlocker Sem

func (r *rlocker) Lock()   { (*Sem)(r).RLock() }
func (r *rlocker) Unlock() { (*Sem)(r).RUnlock() }

// Waiters returns the modes of the queued waiters, head first.
func (s *Sem) Waiters() []Mode {
	s.mu.lock()
	defer s.mu.unlock()
	return s.queue.modes()
}

func (s *Sem) traceWake(res wakeResult, downgrading bool) {
	if s.log == nil {
		return
	}
	if res.writer {
		s.log.Debug("rwsem: granted writer", "name", s.name)
	}
	if res.readers > 0 {
		s.log.Debug("rwsem: granted readers",
			"name", s.name,
			"count", res.readers,
			"downgrade", downgrading)
	}
}
