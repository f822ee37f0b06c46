//go:build !linux

package chanpool

// currentOSThreadID falls back to a sentinel on platforms where chanpool has
// no cheap way to read the kernel thread id. Callers should treat
// TaskContext.OSThreadID as advisory regardless of platform.
func currentOSThreadID() int {
	return -1
}
