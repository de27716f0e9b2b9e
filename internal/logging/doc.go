// Package logger provides leveled logging for mattercrypt CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages
//
// Warnings and errors are always shown on stderr.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := logger.New(verbose, debug)
//	log.Infof("resolved session for %s", username)
//
// The root command creates a logger before running and passes it to
// internal functions.
package logger
