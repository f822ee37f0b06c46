// Package telemetry wraps log/slog for chanpool's ambient logging, mirroring
// the structured-logging convention of ChuLiYu-raft-recovery's
// internal/raft package (slog.With("component", ...)). The Channel and Task
// state machines never log: only the owning Pool does, and only at
// Debug/Warn level for lifecycle events a Pool operator might care about.
package telemetry

import "log/slog"

// Pool returns a logger scoped to the "chanpool.pool" component. base defaults to
// slog.Default() when nil, so a Pool is usable without any logging
// configuration at all.
func Pool(base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return base.With("component", "chanpool.pool")
}
