package rwsem

import (
	"sync/atomic"
)

// Stats counts slow-path events of a Sem since it was created.
type Stats struct {
	// ReadWaits and WriteWaits count acquisitions that had to queue.
	ReadWaits  uint64
	WriteWaits uint64

	// Steals counts writers that took the lock ahead of their turn.
	Steals uint64

	// WriterGrants counts writers handed the lock by a release.
	WriterGrants uint64

	// ReaderBatches counts grants of contiguous head readers; each batch is a
	// single state update. ReadersWoken is the total size of those batches.
	ReaderBatches uint64
	ReadersWoken  uint64
}

type counters struct {
	readWaits     atomic.Uint64
	writeWaits    atomic.Uint64
	steals        atomic.Uint64
	writerGrants  atomic.Uint64
	readerBatches atomic.Uint64
	readersWoken  atomic.Uint64
}

// Stats returns a snapshot of the slow-path counters. The fields are read
// one by one and need not be mutually consistent under concurrent use.
func (s *Sem) Stats() Stats {
	return Stats{
		ReadWaits:     s.stats.readWaits.Load(),
		WriteWaits:    s.stats.writeWaits.Load(),
		Steals:        s.stats.steals.Load(),
		WriterGrants:  s.stats.writerGrants.Load(),
		ReaderBatches: s.stats.readerBatches.Load(),
		ReadersWoken:  s.stats.readersWoken.Load(),
	}
}
