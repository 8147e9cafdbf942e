package cli

import (
	"errors"
	"fmt"
	"testing"

	"chronicle-hq/chronicle/pkg/config"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("output", "unknown format")
	if want := "config error in output: unknown format"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("load", cause)

	if want := "command load failed: boom"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("x"), ExitFailure},
		{"config", NewConfigError("f", "m"), ExitConfig},
		{"validation", fmt.Errorf("load: %w", config.ValidationError{}), ExitConfig},
		{"diagnostics", NewCommandError("load", &DiagnosticsError{Count: 2}), ExitDiagnostics},
		{"wrapped command", NewCommandError("load", errors.New("x")), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
