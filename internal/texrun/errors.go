package texrun

import (
	"errors"
	"fmt"
)

// Sentinel errors for compilation.
var (
	// ErrFailed indicates the compiler exited non-zero or produced no PDF.
	ErrFailed = errors.New("compilation failed")

	// ErrTimeout indicates the compiler was killed at the deadline.
	ErrTimeout = errors.New("compilation timed out")

	// ErrNotRunnable indicates Run was called on a job that already ran.
	ErrNotRunnable = errors.New("job not runnable")
)

// ExcerptLimit is the number of characters of compiler output kept in a
// CompilationError.
const ExcerptLimit = 500

// CompilationError describes a failed compiler run. It matches ErrFailed
// with errors.Is, as well as the underlying cause when there is one.
type CompilationError struct {
	ExitCode int    // -1 when the process never exited normally
	Excerpt  string // leading compiler output, bounded by ExcerptLimit
	Err      error  // cause, e.g. exec.ErrNotFound or a missing artifact
}

func (e *CompilationError) Error() string {
	msg := ErrFailed.Error()
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("%s (exit status %d)", msg, e.ExitCode)
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Excerpt != "" {
		msg += ": " + e.Excerpt
	}
	return msg
}

func (e *CompilationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFailed}
	}
	return []error{ErrFailed, e.Err}
}
