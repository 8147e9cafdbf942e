package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Game.Dir = "/games/ck2"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "mod without .mod suffix",
			mutate:    func(c *Config) { c.Game.Mods = []string{"mods/a.txt"} },
			wantField: "game.mods[0]",
		},
		{
			name:      "empty document entry",
			mutate:    func(c *Config) { c.Game.Documents = []string{"a.txt", ""} },
			wantField: "game.documents[1]",
		},
		{
			name:      "zero workers",
			mutate:    func(c *Config) { c.Loader.Workers = 0 },
			wantField: "loader.workers",
		},
		{
			name:      "negative max file size",
			mutate:    func(c *Config) { c.Loader.MaxFileSize = -1 },
			wantField: "loader.max_file_size",
		},
		{
			name: "snapshot enabled without path",
			mutate: func(c *Config) {
				c.Snapshot.Enabled = true
				c.Snapshot.Path = ""
			},
			wantField: "snapshot.path",
		},
		{
			name:      "compress without json path",
			mutate:    func(c *Config) { c.Snapshot.Compress = true },
			wantField: "snapshot.compress",
		},
		{
			name:      "bad cron",
			mutate:    func(c *Config) { c.Watch.Schedule = "every day" },
			wantField: "watch.schedule",
		},
		{
			name:      "extension without dot",
			mutate:    func(c *Config) { c.Watch.Extensions = []string{"txt"} },
			wantField: "watch.extensions[0]",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "tracing without endpoint",
			mutate:    func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "sample ratio out of range",
			mutate:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name:      "health without listener",
			mutate:    func(c *Config) { c.Telemetry.Health.Enabled = true },
			wantField: "telemetry.health.enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			verr := err.(ValidationError)
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					return
				}
			}
			t.Errorf("errors = %v, want one for field %s", verr.Errors, tt.wantField)
		})
	}
}

func TestFieldError_Error(t *testing.T) {
	fe := FieldError{Field: "game.dir", Message: "game directory is required"}
	want := "game.dir: game directory is required"
	if got := fe.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
