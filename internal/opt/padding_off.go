//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !rwsem_disable_padding && !rwsem_enable_padding

package opt

// Pad_ is empty by default on amd64 and 32-bit architectures.
type Pad_ struct{}

const Padded_ = false
