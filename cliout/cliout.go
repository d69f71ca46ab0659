// Package cliout provides output formatting for the httpget command line.
// It supports human-readable text as well as JSON and YAML, with ANSI colors
// and Unicode symbols when the terminal allows them.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols and their ASCII fallbacks
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"

	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

var (
	mu           sync.RWMutex
	globalFormat           = FormatDefault
	noColor                = os.Getenv("NO_COLOR") != ""
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

// supportsUnicode detects if the terminal supports Unicode symbols
var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code and PowerShell render Unicode; plain cmd.exe does not.
	return os.Getenv("WT_SESSION") != "" ||
		os.Getenv("TERM_PROGRAM") == "vscode" ||
		os.Getenv("PSModulePath") != "" ||
		os.Getenv("TERM") != ""
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// SetOutput redirects data output (out) and status messages (status).
// Passing nil keeps the current writer.
func SetOutput(out, status io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if status != nil {
		stderr = status
	}
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// colorize wraps text in color when w is a terminal and colors are enabled.
func colorize(w io.Writer, color, text string) string {
	mu.RLock()
	disabled := noColor
	mu.RUnlock()
	if disabled || !isTerminal(w) {
		return text
	}
	return color + text + Reset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writers() (io.Writer, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return stdout, stderr
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	case "yaml":
		globalFormat = FormatYAML
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json, yaml)", format)
	}
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// IsStructured returns true for any machine-readable format.
func IsStructured() bool {
	return GetFormat() != FormatDefault
}

// PrintJSON prints data as indented JSON.
func PrintJSON(data any) error {
	out, _ := writers()
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML prints data as a YAML document.
func PrintYAML(data any) error {
	out, _ := writers()
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
// For JSON and YAML, marshals the data object.
func Print(data any, formatter func()) error {
	switch GetFormat() {
	case FormatJSON:
		return PrintJSON(data)
	case FormatYAML:
		return PrintYAML(data)
	default:
		formatter()
		return nil
	}
}

// Header prints a bold header with a divider
func Header(text string) {
	out, _ := writers()
	fmt.Fprintf(out, "\n%s\n", colorize(out, Bold, text))
	fmt.Fprintln(out, strings.Repeat("=", len(text)))
}

// Label prints a label and value pair
func Label(label, value string) {
	out, _ := writers()
	fmt.Fprintf(out, "   %s %s\n", colorize(out, Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Success prints a success message with green checkmark
func Success(format string, args ...any) {
	status(BrightGreen, getIcon(SymbolCheck, ASCIICheck), format, args...)
}

// Error prints an error message with red X
func Error(format string, args ...any) {
	status(BrightRed, getIcon(SymbolCross, ASCIICross), format, args...)
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...any) {
	status(BrightYellow, getIcon(SymbolWarning, ASCIIWarning), format, args...)
}

// Info prints an info message with blue info icon
func Info(format string, args ...any) {
	status(BrightBlue, getIcon(SymbolInfo, ASCIIInfo), format, args...)
}

// status messages go to the status writer so downloaded content on stdout stays clean.
func status(color, icon, format string, args ...any) {
	_, w := writers()
	fmt.Fprintf(w, "%s %s\n", colorize(w, color, icon), fmt.Sprintf(format, args...))
}
