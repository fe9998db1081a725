// Package logging provides the structured logging system for qakit.
//
// It is a thin wrapper around Go's standard slog package that tags every
// entry with a subsystem identifier so the batch pipeline's phases
// (Loader, Delta, Generator, Watcher) can be filtered apart.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage
//
//	import "qakit/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Generator", "Generated %s", outPath)
//	logging.Warn("Delta", "State file corrupt, regenerating everything")
//	logging.Error("Loader", err, "Failed to read spec %s", path)
//
// InitForCLI must be called once at startup before any logging; messages
// logged before initialization are dropped.
package logging
