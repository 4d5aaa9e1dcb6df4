//go:build dev

// Package trace records runtime traces in development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/promptkit
//	PROMPTKIT_TRACE=trace.out promptkit complete 'list -'
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	rtrace "runtime/trace"
	"sync"
)

// EnvVar names the file the trace is written to
const EnvVar = "PROMPTKIT_TRACE"

var (
	mu     sync.Mutex
	out    *os.File
	active bool
)

// Init starts tracing when EnvVar is set. The returned function stops the
// trace and must be deferred.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptkit: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := rtrace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "promptkit: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}

	out = f
	active = true
	fmt.Fprintf(os.Stderr, "promptkit: tracing to %s\n", path)

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if active {
			rtrace.Stop()
			active = false
		}
		if out != nil {
			_ = out.Close()
			out = nil
		}
	}
}

// Region starts a trace region and returns the function ending it
func Region(ctx context.Context, name string) func() {
	if !active {
		return func() {}
	}
	return rtrace.StartRegion(ctx, name).End
}

// WithRegion runs f inside a trace region
func WithRegion(ctx context.Context, name string, f func()) {
	if !active {
		f()
		return
	}
	rtrace.WithRegion(ctx, name, f)
}

// Log records a message in the trace
func Log(ctx context.Context, category, message string) {
	if active {
		rtrace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether a trace is being recorded
func IsEnabled() bool {
	return active
}
