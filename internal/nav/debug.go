package nav

import "sync/atomic"

// queryDebug gates the per-query debug records: rejected path requests,
// found paths with raw and simplified lengths, out-of-range node lookups
// and line-of-sight probes. slog drops them anyway below debug level, but
// building the attributes on every query is what the flag avoids.
var queryDebug atomic.Bool

// EnableDebugLogging turns the per-query debug records on or off.
// cmd/navsim enables it when log_level is debug.
func EnableDebugLogging(enabled bool) {
	queryDebug.Store(enabled)
}

// IsDebugEnabled reports whether per-query debug records are emitted.
func IsDebugEnabled() bool {
	return queryDebug.Load()
}
