package cliout

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// captureOutput redirects both writers to buffers for the duration of the test.
func captureOutput(t *testing.T) (out, status *bytes.Buffer) {
	t.Helper()
	out, status = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldStatus := writers()
	SetOutput(out, status)
	t.Cleanup(func() { SetOutput(oldOut, oldStatus) })
	return out, status
}

func resetFormat(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = SetFormat("default") })
}

func TestSetFormat(t *testing.T) {
	resetFormat(t)

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"default", FormatDefault, false},
		{"", FormatDefault, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", FormatDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_ = SetFormat("default")
			err := SetFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SetFormat(%q) expected error", tt.input)
				}
				if !strings.Contains(err.Error(), "invalid output format") {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetFormat(%q) failed: %v", tt.input, err)
			}
			if GetFormat() != tt.want {
				t.Errorf("GetFormat() = %q, want %q", GetFormat(), tt.want)
			}
		})
	}
}

func TestIsJSONAndStructured(t *testing.T) {
	resetFormat(t)

	_ = SetFormat("json")
	if !IsJSON() || !IsStructured() {
		t.Error("json format should be JSON and structured")
	}

	_ = SetFormat("yaml")
	if IsJSON() || !IsStructured() {
		t.Error("yaml format should be structured but not JSON")
	}

	_ = SetFormat("default")
	if IsJSON() || IsStructured() {
		t.Error("default format should not be structured")
	}
}

func TestStatusMessagesGoToStatusWriter(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string, ...any)
		icons []string
	}{
		{"success", Success, []string{SymbolCheck, ASCIICheck}},
		{"error", Error, []string{SymbolCross, ASCIICross}},
		{"warning", Warning, []string{SymbolWarning, ASCIIWarning}},
		{"info", Info, []string{SymbolInfo, ASCIIInfo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, status := captureOutput(t)

			tt.fn("hello %s", "world")

			if out.Len() != 0 {
				t.Errorf("expected nothing on data writer, got %q", out.String())
			}
			got := status.String()
			if !strings.Contains(got, "hello world") {
				t.Errorf("expected message in status output, got %q", got)
			}
			if !strings.Contains(got, tt.icons[0]) && !strings.Contains(got, tt.icons[1]) {
				t.Errorf("expected icon in status output, got %q", got)
			}
		})
	}
}

func TestNoColorForNonTerminal(t *testing.T) {
	_, status := captureOutput(t)
	ForceColor()

	Success("plain")

	if strings.Contains(status.String(), "\033[") {
		t.Errorf("expected no ANSI codes for a buffer, got %q", status.String())
	}
}

func TestHeaderAndLabel(t *testing.T) {
	out, _ := captureOutput(t)

	Header("URL")
	Label("Host", "example.com")

	got := out.String()
	if !strings.Contains(got, "URL\n===") {
		t.Errorf("expected header with divider, got %q", got)
	}
	if !strings.Contains(got, "Host:") || !strings.Contains(got, "example.com") {
		t.Errorf("expected label line, got %q", got)
	}
}

func TestPrint(t *testing.T) {
	resetFormat(t)
	data := map[string]string{"host": "example.com"}

	t.Run("default calls formatter", func(t *testing.T) {
		out, _ := captureOutput(t)
		_ = SetFormat("default")
		called := false
		if err := Print(data, func() { called = true }); err != nil {
			t.Fatal(err)
		}
		if !called {
			t.Error("formatter was not called")
		}
		if out.Len() != 0 {
			t.Errorf("expected no data output, got %q", out.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _ := captureOutput(t)
		_ = SetFormat("json")
		if err := Print(data, func() { t.Error("formatter should not run") }); err != nil {
			t.Fatal(err)
		}
		var parsed map[string]string
		if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid JSON %q: %v", out.String(), err)
		}
		if parsed["host"] != "example.com" {
			t.Errorf("unexpected JSON: %v", parsed)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, _ := captureOutput(t)
		_ = SetFormat("yaml")
		if err := Print(data, func() { t.Error("formatter should not run") }); err != nil {
			t.Fatal(err)
		}
		var parsed map[string]string
		if err := yaml.Unmarshal(out.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid YAML %q: %v", out.String(), err)
		}
		if parsed["host"] != "example.com" {
			t.Errorf("unexpected YAML: %v", parsed)
		}
	})
}
