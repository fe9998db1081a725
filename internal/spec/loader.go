package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"qakit/pkg/logging"
)

// Load reads and parses one JSON specification file into a Suite.
// It returns a *ParseError for malformed JSON and a *SchemaError when a
// required field is missing. Load has no side effects beyond reading
// the file; the raw bytes are returned alongside the suite so the
// caller can fingerprint exactly what was parsed.
func Load(path string) (*Suite, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	suite, err := Parse(path, content)
	if err != nil {
		return nil, nil, err
	}

	logging.Debug("Loader", "Loaded spec %s: suite %q with %d test cases", path, suite.Name, len(suite.Tests))
	return suite, content, nil
}

// Parse decodes raw spec bytes into a validated Suite. The path is used
// only for error identity.
func Parse(path string, content []byte) (*Suite, error) {
	var suite Suite

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&suite); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	suite.SourcePath = path

	if err := validateSuite(&suite, path); err != nil {
		return nil, err
	}

	return &suite, nil
}

// validateSuite checks the required top-level and per-case fields.
// Unknown fields are ignored for forward compatibility.
func validateSuite(suite *Suite, path string) error {
	if suite.Name == "" {
		return &SchemaError{Path: path, Field: "name", Message: "suite name is required"}
	}
	if suite.BaseURL == "" {
		return &SchemaError{Path: path, Field: "base_url", Message: "base URL is required"}
	}
	if suite.Tests == nil {
		return &SchemaError{Path: path, Field: "tests", Message: "tests list is required"}
	}

	for i, tc := range suite.Tests {
		if err := validateTestCase(tc, i, path); err != nil {
			return err
		}
	}

	return nil
}

// validateTestCase checks the required fields of one test case.
func validateTestCase(tc TestCase, index int, path string) error {
	field := func(name string) string {
		return fmt.Sprintf("tests[%d].%s", index, name)
	}

	if tc.ID == "" {
		return &SchemaError{Path: path, Field: field("id"), Message: "test case id is required"}
	}
	if tc.Name == "" {
		return &SchemaError{Path: path, Field: field("name"), Message: "test case name is required"}
	}
	if tc.Method == "" {
		return &SchemaError{Path: path, Field: field("method"), Message: "HTTP method is required"}
	}
	if tc.Path == "" {
		return &SchemaError{Path: path, Field: field("path"), Message: "request path is required"}
	}
	if tc.Expected.StatusCode == 0 {
		return &SchemaError{Path: path, Field: field("expected.status_code"), Message: "expected status code is required"}
	}

	return nil
}
