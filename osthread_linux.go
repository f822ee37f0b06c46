//go:build linux

package chanpool

import "golang.org/x/sys/unix"

// currentOSThreadID returns the calling goroutine's kernel thread id. Go
// does not pin goroutines to OS threads across blocking calls, so this is a
// best-effort snapshot valid only for the instant it is read, which is
// exactly what TaskContext.OSThreadID documents.
func currentOSThreadID() int {
	return unix.Gettid()
}
