// Package logger provides verbose logging for the persona CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr so users can follow each file through the
// ingestion pipeline. Errors are printed regardless of verbosity.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu         sync.Mutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetTimestamps prefixes every line with an RFC 3339 timestamp when enabled.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(false, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(false, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write(false, "[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	write(true, "[ERROR] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs how long an operation took once the returned func is called.
//
//	defer logger.Timed("walk %s", rootID)()
func Timed(format string, args ...any) func() {
	start := now()
	return func() {
		Debug(format+" took %s", append(args, now().Sub(start).Round(time.Millisecond))...)
	}
}

func write(always bool, level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !always && !verbose {
		return
	}
	prefix := level
	if timestamps {
		prefix = now().Format(time.RFC3339) + " " + level
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
