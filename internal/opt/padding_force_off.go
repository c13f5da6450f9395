//go:build rwsem_disable_padding && !rwsem_enable_padding

package opt

// Pad_ is force-disabled via the rwsem_disable_padding build tag.
// Use: go build -tags=rwsem_disable_padding
type Pad_ struct{}

const Padded_ = false
