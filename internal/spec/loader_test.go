package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = `{
	"name": "Sample API Suite",
	"base_url": "http://localhost:8000",
	"headers": {"X-Test-Header": "value"},
	"tests": [
		{
			"id": "health-1",
			"name": "healthcheck",
			"method": "GET",
			"path": "/health",
			"expected": {"status_code": 200, "json": {"status": "ok"}}
		}
	]
}`

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_spec.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidSpec(t *testing.T) {
	path := writeSpecFile(t, sampleSpec)

	suite, raw, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Sample API Suite", suite.Name)
	assert.Equal(t, "http://localhost:8000", suite.BaseURL)
	assert.Equal(t, path, suite.SourcePath)
	assert.Equal(t, map[string]string{"X-Test-Header": "value"}, suite.Headers)
	assert.Equal(t, []byte(sampleSpec), raw)

	require.Len(t, suite.Tests, 1)
	tc := suite.Tests[0]
	assert.Equal(t, "health-1", tc.ID)
	assert.Equal(t, "GET", tc.Method)
	assert.Equal(t, 200, tc.Expected.StatusCode)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeSpecFile(t, `{"name": "broken"`)

	_, _, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "missing name",
			content:   `{"base_url": "http://x", "tests": []}`,
			wantField: "name",
		},
		{
			name:      "missing base_url",
			content:   `{"name": "S", "tests": []}`,
			wantField: "base_url",
		},
		{
			name:      "missing tests",
			content:   `{"name": "S", "base_url": "http://x"}`,
			wantField: "tests",
		},
		{
			name: "test case missing method",
			content: `{"name": "S", "base_url": "http://x", "tests": [
				{"id": "t1", "name": "n", "path": "/", "expected": {"status_code": 200}}]}`,
			wantField: "tests[0].method",
		},
		{
			name: "test case missing path",
			content: `{"name": "S", "base_url": "http://x", "tests": [
				{"id": "t1", "name": "n", "method": "GET", "expected": {"status_code": 200}}]}`,
			wantField: "tests[0].path",
		},
		{
			name: "test case missing expected status",
			content: `{"name": "S", "base_url": "http://x", "tests": [
				{"id": "t1", "name": "n", "method": "GET", "path": "/", "expected": {}}]}`,
			wantField: "tests[0].expected.status_code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSpecFile(t, tt.content)

			_, _, err := Load(path)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantField, schemaErr.Field)
		})
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := writeSpecFile(t, `{
		"name": "S", "base_url": "http://x", "future_field": {"a": 1},
		"tests": [{"id": "t1", "name": "n", "method": "GET", "path": "/",
			"something_new": true, "expected": {"status_code": 200}}]
	}`)

	suite, _, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, suite.Tests, 1)
}

func TestLoadEmptyTestsList(t *testing.T) {
	path := writeSpecFile(t, `{"name": "S", "base_url": "http://x", "tests": []}`)

	suite, _, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, suite.Tests)
}
