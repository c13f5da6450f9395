//go:build rwsem_enable_padding

package opt

// Pad_ is force-enabled via the rwsem_enable_padding build tag.
// Use: go build -tags=rwsem_enable_padding
type Pad_ [CacheLineSize_ - 8]byte

const Padded_ = true
