package generate

import "fmt"

// WriteError indicates an I/O failure writing a generated file. It is
// fatal to that spec's output only; writing the delta-state file is a
// separate, run-fatal failure surfaced by the orchestrator directly.
type WriteError struct {
	// Path is the output file that could not be written
	Path string
	// Err is the underlying I/O error
	Err error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write generated file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error
func (e *WriteError) Unwrap() error {
	return e.Err
}
