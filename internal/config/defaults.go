package config

const (
	// DefaultOutputDir is where generated test files are written when no
	// output directory is configured.
	DefaultOutputDir = "tests/generated"

	// EnvSSLVerify toggles TLS verification in generated HTTP clients.
	EnvSSLVerify = "QAKIT_SSL_VERIFY"
	// EnvUseWildcard sets the global default for wildcard ignore matching.
	EnvUseWildcard = "QAKIT_USE_WILDCARD"
	// EnvIgnoreAssert sets the global default for skipping body assertions.
	EnvIgnoreAssert = "QAKIT_IGNORE_ASSERT"
)

// GetDefaultConfig returns the built-in default configuration.
// All boolean toggles default to false.
func GetDefaultConfig() Config {
	return Config{
		SSLVerify:    false,
		UseWildcard:  false,
		IgnoreAssert: false,
		OutputDir:    DefaultOutputDir,
	}
}
