//go:build !rwsem_cachelinesize_32 && !rwsem_cachelinesize_64 && !rwsem_cachelinesize_128 && !rwsem_cachelinesize_256

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the padding unit used to keep the state word of a
// semaphore off the cache line of its wait queue.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
