package pipeline

import "fmt"

// StageError reports a failed stage together with the exit code of the
// external tool that caused it. The process propagates that code as its
// own exit status.
type StageError struct {
	Stage    Stage
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *StageError) Unwrap() error {
	return e.Err
}
