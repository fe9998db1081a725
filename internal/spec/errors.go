package spec

import "fmt"

// ParseError indicates a spec file that is not valid JSON.
// It is fatal to that spec only; the orchestrator continues with the
// remaining specs.
type ParseError struct {
	// Path is the spec file that failed to parse
	Path string
	// Err is the underlying JSON decoding error
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("spec %s: invalid JSON: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decoding error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates a spec file with valid JSON but a missing or
// invalid required field. Fatal to that spec only.
type SchemaError struct {
	// Path is the spec file with the schema violation
	Path string
	// Field is the missing or invalid field, e.g. "base_url" or
	// "tests[2].method"
	Field string
	// Message is a human-readable description of the violation
	Message string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("spec %s: field %s: %s", e.Path, e.Field, e.Message)
}

// DuplicateTestIDError indicates two test cases within one suite
// sharing the same id. Fatal to that spec only.
type DuplicateTestIDError struct {
	// Path is the spec file containing the duplicate
	Path string
	// ID is the duplicated test case id
	ID string
}

// Error implements the error interface
func (e *DuplicateTestIDError) Error() string {
	return fmt.Sprintf("spec %s: duplicate test case id %q", e.Path, e.ID)
}
