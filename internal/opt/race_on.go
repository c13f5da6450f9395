//go:build race

package opt

// Race_ reports whether the race detector is enabled. Timing based tests
// widen their windows under it.
const Race_ = true
