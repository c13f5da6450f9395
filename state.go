package rwsem

import (
	"sync/atomic"
)

// State word layout (int64):
//
//	bits 0-31  active field:  0 = free, N in [1, writerBias) = N readers,
//	                          writerBias = one writer
//	bits 32-63 waiting field: waitingBias while the wait queue is non-empty
//
// waitingBias makes the whole word negative, so any party doing an atomic
// update can tell "contended" from "free" without looking at the queue.
const (
	readerBias  int64 = 1
	writerBias  int64 = 1 << 30
	activeMask  int64 = 1<<32 - 1
	waitingBias int64 = -1 << 32

	maxReaders = writerBias - 1
)

// stateWord is only ever changed additively (Add or CompareAndSwap over the
// whole word); no field is updated on its own. That is what lets the fast
// path and the slow path race without a lock.
type stateWord struct {
	v atomic.Int64
}

func (s *stateWord) add(delta int64) int64 {
	return s.v.Add(delta)
}

func (s *stateWord) load() int64 {
	return s.v.Load()
}

func (s *stateWord) cas(old, next int64) bool {
	return s.v.CompareAndSwap(old, next)
}

func active(v int64) int64 {
	return v & activeMask
}

func hasActiveHolder(v int64) bool {
	return active(v) != 0
}

func isWriterBiased(v int64) bool {
	return active(v) == writerBias
}

func hasWaiters(v int64) bool {
	return v < 0
}
