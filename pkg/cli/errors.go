package cli

import (
	"errors"
	"fmt"

	"chronicle-hq/chronicle/pkg/config"
)

// Exit codes returned by the chronicle command.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitDiagnostics = 3
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// DiagnosticsError reports a load that finished with diagnostics when the
// command was asked to treat them as failures.
type DiagnosticsError struct {
	Count  int
	Failed int
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("load finished with %d diagnostic(s), %d failed document(s)", e.Count, e.Failed)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *ConfigError
	var valErr config.ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		return ExitConfig
	}
	var diagErr *DiagnosticsError
	if errors.As(err, &diagErr) {
		return ExitDiagnostics
	}
	return ExitFailure
}
