package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"qakit/pkg/logging"

	"gopkg.in/yaml.v3"
)

const configFileName = "qakit.yaml"

// osGetenv is a variable to allow mocking in tests.
var osGetenv = os.Getenv

// Load builds the run configuration in three layers: built-in defaults,
// an optional qakit.yaml in the working directory (or at configPath when
// non-empty), then QAKIT_* environment variables. CLI flags are overlaid
// afterwards by the command layer, which knows which flags were set.
func Load(configPath string) (Config, error) {
	cfg := GetDefaultConfig()

	path := configPath
	if path == "" {
		path = configFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		logging.Debug("Config", "No %s found, using defaults", path)
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		logging.Info("Config", "Loaded configuration from %s", path)
	}

	applyEnv(&cfg)

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	return cfg, nil
}

// applyEnv overlays QAKIT_* environment variables onto the configuration.
func applyEnv(cfg *Config) {
	if v := osGetenv(EnvSSLVerify); v != "" {
		cfg.SSLVerify = parseBool(v)
	}
	if v := osGetenv(EnvUseWildcard); v != "" {
		cfg.UseWildcard = parseBool(v)
	}
	if v := osGetenv(EnvIgnoreAssert); v != "" {
		cfg.IgnoreAssert = parseBool(v)
	}
}

// parseBool treats "0", "false" and "no" (case-insensitive) as false and
// every other non-empty value as true.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}
