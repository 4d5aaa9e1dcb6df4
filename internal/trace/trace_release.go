//go:build !dev

// Package trace records runtime traces in development builds. Release
// builds compile every function to a no-op.
package trace

import "context"

// EnvVar names the file the trace is written to in dev builds
const EnvVar = "PROMPTKIT_TRACE"

// Init does nothing in release builds
func Init() func() {
	return func() {}
}

// Region does nothing in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// WithRegion just calls f in release builds
func WithRegion(_ context.Context, _ string, f func()) {
	f()
}

// Log does nothing in release builds
func Log(_ context.Context, _, _ string) {}

// IsEnabled is always false in release builds
func IsEnabled() bool {
	return false
}
