package rwsem

import (
	"github.com/llxisdsh/pb"
)

// Group allows reader/writer locking on arbitrary keys.
//
// Features:
//   - RLock/RUnlock for shared access, Lock/Unlock for exclusive access.
//   - Downgrade turns an exclusive hold on a key into a shared one.
//   - Infinite Keys & Auto-Cleanup: a key's Sem exists only while someone
//     holds or waits for it.
//
// Usage:
//
//	var group rwsem.Group[string]
//
//	// Readers
//	group.RLock("config")
//	read(config)
//	group.RUnlock("config")
//
//	// Writer
//	group.Lock("config")
//	write(config)
//	group.Unlock("config")
//
// The zero value is ready to use; NewGroup applies options to every
// per-key Sem.
type Group[K comparable] struct {
	_    noCopy
	m    pb.MapOf[K, *groupEntry]
	opts []func(*Config)
}

type groupEntry struct {
	sem Sem
	// ref counts holders and waiters; only changed inside ProcessEntry.
	ref int32
}

// NewGroup returns a Group whose per-key semaphores are built with opts.
func NewGroup[K comparable](opts ...func(*Config)) *Group[K] {
	return &Group[K]{opts: opts}
}

// acquire pins the entry for k, creating it if needed.
func (g *Group[K]) acquire(k K) *groupEntry {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &groupEntry{ref: 1}
			e.sem.init(newConfig(g.opts))
			return &pb.EntryOf[K, *groupEntry]{Value: e}, e, false
		},
	)
	return v
}

// release unpins the entry for k and drops it once unused.
func (g *Group[K]) release(k K) {
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}

func (g *Group[K]) lookup(k K) *groupEntry {
	v, ok := g.m.Load(k)
	if !ok {
		panic("rwsem: unlock of unlocked Group key")
	}
	return v
}

// Lock locks k for writing.
func (g *Group[K]) Lock(k K) {
	g.acquire(k).sem.Lock()
}

// Unlock unlocks k for writing.
func (g *Group[K]) Unlock(k K) {
	g.lookup(k).sem.Unlock()
	g.release(k)
}

// RLock locks k for reading.
func (g *Group[K]) RLock(k K) {
	g.acquire(k).sem.RLock()
}

// RUnlock undoes a single RLock of k.
func (g *Group[K]) RUnlock(k K) {
	g.lookup(k).sem.RUnlock()
	g.release(k)
}

// Downgrade turns the caller's write lock on k into a read lock, to be
// released with RUnlock.
func (g *Group[K]) Downgrade(k K) {
	g.lookup(k).sem.Downgrade()
}
