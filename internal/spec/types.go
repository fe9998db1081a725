package spec

// Suite is the in-memory descriptor of one JSON specification file.
// It is created by Load, identified by its source path, and immutable
// for the rest of a generation pass once Normalize has run.
type Suite struct {
	// Name is the human-readable suite name
	Name string `json:"name"`
	// BaseURL is the base URL all test cases are executed against
	BaseURL string `json:"base_url"`
	// Headers are suite-level HTTP headers passed through to the
	// generated client unchanged
	Headers map[string]string `json:"headers,omitempty"`
	// Tests are the test cases in declaration order
	Tests []TestCase `json:"tests"`

	// SourcePath is the spec file this suite was loaded from
	SourcePath string `json:"-"`
}

// TestCase defines a single HTTP test case within a suite.
type TestCase struct {
	// ID is the unique identifier of the case within its suite
	ID string `json:"id"`
	// Name is the human-readable case name; the generated function
	// identifier is derived from it
	Name string `json:"name"`
	// Description provides optional documentation emitted into the
	// generated test
	Description string `json:"description,omitempty"`
	// Method is the HTTP method (GET, POST, ...)
	Method string `json:"method"`
	// Path is the request path relative to the suite base URL
	Path string `json:"path"`
	// Body is the JSON request body; defaults to an empty object
	Body interface{} `json:"body,omitempty"`
	// Params are URL query parameters
	Params map[string]string `json:"params,omitempty"`
	// Expected defines the expected outcome
	Expected Expectation `json:"expected"`
	// IgnoreAssert skips the JSON body assertion entirely when true.
	// Nil means "use the global default".
	IgnoreAssert *bool `json:"ignore_assert,omitempty"`
	// IgnoreJSON lists key paths excluded from the body comparison
	IgnoreJSON []string `json:"ignore_json,omitempty"`
	// UseWildcard enables matching ignore keys at any nesting depth.
	// Nil means "use the global default".
	UseWildcard *bool `json:"use_wildcard,omitempty"`

	// Ident is the sanitized, collision-free identifier derived from
	// Name by Normalize. Empty until normalization has run.
	Ident string `json:"-"`
	// EffectiveIgnoreAssert and EffectiveUseWildcard are the resolved
	// per-case values after applying global defaults.
	EffectiveIgnoreAssert bool `json:"-"`
	EffectiveUseWildcard  bool `json:"-"`
}

// Expectation defines what response a test case expects.
type Expectation struct {
	// StatusCode is the expected HTTP status code
	StatusCode int `json:"status_code"`
	// JSON is the expected response body, compared with partial
	// recursive match semantics; nil disables the body assertion
	JSON interface{} `json:"json,omitempty"`
}
