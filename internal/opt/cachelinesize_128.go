//go:build rwsem_cachelinesize_128

package opt

// CacheLineSize_ is forced to 128 bytes via the rwsem_cachelinesize_128 build tag.
const CacheLineSize_ = 128
