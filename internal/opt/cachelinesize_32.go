//go:build rwsem_cachelinesize_32

package opt

// CacheLineSize_ is forced to 32 bytes via the rwsem_cachelinesize_32 build tag.
const CacheLineSize_ = 32
