package crash

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInterrupted marks a user interrupt. It is never handled, only
	// passed back to the default handler.
	ErrInterrupted = errors.New("interrupted")

	// ErrNoFrames is returned when a traceback names no source file.
	ErrNoFrames = errors.New("traceback has no frames")

	// ErrMalformedPatch is returned when the corrected code is empty or
	// still carries code fences after stripping. The file is not written.
	ErrMalformedPatch = errors.New("malformed patch")
)

// FileAccessError is a failure reading or writing the offending file.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ServiceError is a failure of the completion service.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsInterrupt reports whether a recovered panic value or error is a user
// interrupt.
func IsInterrupt(v any) bool {
	switch x := v.(type) {
	case os.Signal:
		return x == os.Interrupt
	case error:
		return errors.Is(x, ErrInterrupted)
	}
	return false
}
