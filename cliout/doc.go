// Package cliout provides structured output formatting for CLI commands.
//
// # Basic Usage
//
//	cliout.Success("Saved %d bytes to %s", n, path)
//	cliout.Error("Could not parse URL '%s': %v", raw, err)
//	cliout.Warning("Scheme '%s' is not supported", scheme)
//	cliout.Info("Connected to %s", host)
//
// Status messages (Success, Error, Warning, Info) are written to stderr.
// Data output (Print, Header, Label) is written to stdout. Both can be
// redirected with SetOutput.
//
// # Output Formats
//
// The package supports three output formats:
//   - default: Human-readable text with colors and Unicode symbols
//   - json: Indented JSON for scripting
//   - yaml: YAML documents for scripting
//
// Print takes both the data and a formatter for the default format:
//
//	err := cliout.Print(u, func() {
//		cliout.Label("Host", *u.Host)
//	})
//
// # Colors
//
// Colors are only emitted when the destination is a terminal. NO_COLOR or a
// call to NoColor disables them entirely.
package cliout
