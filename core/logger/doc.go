// Package logger provides a structured logging facility based on Zap.
//
// All of the CLI tools log through the same configured logger, so that a
// rating prepared interactively and a rating prepared by automation produce
// the same output stream.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (automation) or console (interactive use)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("merge finished", zap.String("rating", "Winter2021"))
package logger
