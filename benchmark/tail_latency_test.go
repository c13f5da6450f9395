package benchmark

import (
	"runtime"
	"slices"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// Test parameters - adjust for stability vs speed tradeoff
const (
	defaultOpsPerWorker = 20000 // Lock acquisitions per worker
	writerShare         = 8     // One writer worker per writerShare workers
	holdSpins           = 32    // Busy work inside the critical section
)

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// measure runs a mixed reader/writer workload and returns acquisition
// latencies of writers and readers.
func measure(lk RWLocker, workers, ops int) (writers, readers []time.Duration) {
	var mu sync.Mutex
	var g errgroup.Group
	var sink int
	for w := range workers {
		isWriter := w%writerShare == 0
		g.Go(func() error {
			local := make([]time.Duration, 0, ops)
			x := 0
			for range ops {
				start := time.Now()
				if isWriter {
					lk.Lock()
					local = append(local, time.Since(start))
					for i := range holdSpins {
						x += i
					}
					lk.Unlock()
				} else {
					unlock := lk.RLock()
					local = append(local, time.Since(start))
					for i := range holdSpins {
						x += i
					}
					unlock()
				}
			}
			mu.Lock()
			sink += x
			if isWriter {
				writers = append(writers, local...)
			} else {
				readers = append(readers, local...)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	_ = sink
	slices.Sort(writers)
	slices.Sort(readers)
	return writers, readers
}

// TestTailLatency reports acquisition latency percentiles. Neither class of
// waiter should starve under sustained contention.
func TestTailLatency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping latency report in short mode")
	}
	workers := 4 * runtime.GOMAXPROCS(0)
	for _, l := range lockers {
		w, r := measure(l.newLock(), workers, defaultOpsPerWorker)
		t.Logf("%-14s writers p50=%-10v p99=%-10v max=%-10v readers p50=%-10v p99=%-10v max=%v",
			l.name,
			percentile(w, 0.50), percentile(w, 0.99), percentile(w, 1),
			percentile(r, 0.50), percentile(r, 0.99), percentile(r, 1))
	}
}
