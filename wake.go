package rwsem

// wakeResult summarizes what one run of the wake engine released.
type wakeResult struct {
	readers int
	writer  bool
}

// wake releases waiters from the head of the queue. s.mu must be held.
//
// A head writer is granted alone and never by a downgrade. Otherwise every
// contiguous reader at the head is granted with a single state update, so no
// writer can slip in between two grants of the same batch.
func (s *Sem) wake(downgrading bool) (res wakeResult) {
	w := s.queue.front()
	if w == nil {
		return
	}
	if w.mode == WriteWaiting {
		if downgrading {
			return
		}
		// Someone still holds the lock; their release calls back in.
		if hasActiveHolder(s.state.load()) {
			return
		}
		if s.claimWrite(w) {
			s.stats.writerGrants.Add(1)
			w.handoff().Wake()
			res.writer = true
		}
		return
	}
	if !downgrading && hasActiveHolder(s.state.load()) {
		return
	}

	n := 0
	for r := w; r != nil && r.mode == ReadWaiting; r = r.next {
		n++
	}
	adjustment := int64(n) * readerBias
	if n == s.queue.n {
		adjustment -= waitingBias
	}
	s.state.add(adjustment)
	s.stats.readerBatches.Add(1)
	s.stats.readersWoken.Add(uint64(n))

	for range n {
		r := s.queue.front()
		s.queue.remove(r)
		r.handoff().Wake()
	}
	res.readers = n
	return
}

// claimWrite moves the write bias onto w, which must be queued, and unlinks
// it on success. s.mu must be held.
//
// The bias is applied first and reverted if another holder shows up in the
// active field. If the revert finds the lock free, the holder left in
// between and the claim is retried; since nobody can newly acquire outside
// s.mu while the queue is non-empty, this only repeats as long as holders
// keep leaving.
func (s *Sem) claimWrite(w *waiter) bool {
	adjustment := writerBias
	if s.queue.singular(w) {
		adjustment -= waitingBias
	}
	for {
		if isWriterBiased(s.state.add(adjustment)) {
			s.queue.remove(w)
			return true
		}
		if hasActiveHolder(s.state.add(-adjustment)) {
			return false
		}
	}
}

// wakeOnRelease is called once a release dropped the active field to zero
// while waiters were present.
func (s *Sem) wakeOnRelease() {
	s.mu.lock()
	var res wakeResult
	if !s.queue.empty() {
		res = s.wake(false)
	}
	s.mu.unlock()
	s.traceWake(res, false)
}

// wakeOnDowngrade is called once a writer turned itself into a reader and
// found waiters present. Only head readers are released.
func (s *Sem) wakeOnDowngrade() {
	s.mu.lock()
	var res wakeResult
	if !s.queue.empty() {
		res = s.wake(true)
	}
	s.mu.unlock()
	s.traceWake(res, true)
}
