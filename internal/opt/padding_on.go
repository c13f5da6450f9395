//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !rwsem_disable_padding && !rwsem_enable_padding

package opt

// Pad_ separates the atomically updated state word from the fields that are
// only touched under the queue lock.
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): adjacent-line prefetch makes it less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type Pad_ [CacheLineSize_ - 8]byte

const Padded_ = true
