// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// Diagnostics always go to stderr so that downloaded content written to
// stdout stays clean.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	logutil.Debug("sending request", "target", target)
//	logutil.Info("connected", "host", host)
//	logutil.Error("download failed", "error", err)
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set HTTPGET_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"connected","host":"example.com"}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2026-01-15T10:30:00Z level=INFO msg=connected host=example.com
package logutil
