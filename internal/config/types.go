package config

// Config is the immutable run configuration for the generation pipeline.
// It is constructed once at process start by Load and passed by value
// into the loader, normalizer and renderer. Core logic never reads
// environment variables or other globals directly.
type Config struct {
	// SSLVerify controls TLS certificate verification in the HTTP client
	// configuration embedded into generated test files. It is a
	// pass-through value, not generator logic.
	SSLVerify bool `yaml:"ssl_verify"`
	// UseWildcard is the global default for the matcher wildcard mode.
	// Individual test cases may override it.
	UseWildcard bool `yaml:"use_wildcard"`
	// IgnoreAssert is the global default for skipping JSON body
	// assertions. Individual test cases may override it.
	IgnoreAssert bool `yaml:"ignore_assert"`
	// OutputDir is the directory generated test files are written to.
	// The delta-state file lives in the same directory.
	OutputDir string `yaml:"output_dir"`
}
