package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chronicle.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
game:
  dir: "/games/ck2"
  mods:
    - "/games/ck2/mod/a.mod"
    - "/games/ck2/mod/b.mod"
  setup_log: "/tmp/setup.log"

loader:
  workers: 4

snapshot:
  enabled: true
  json_path: "out/world.json.xz"
  compress: true

watch:
  debounce: "2s"
  schedule: "*/30 * * * *"

telemetry:
  logging:
    level: "debug"
    format: "json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Game.Dir != "/games/ck2" {
		t.Errorf("Game.Dir = %q, want %q", cfg.Game.Dir, "/games/ck2")
	}
	if diff := cmp.Diff([]string{"/games/ck2/mod/a.mod", "/games/ck2/mod/b.mod"}, cfg.Game.Mods); diff != "" {
		t.Errorf("Game.Mods mismatch (-want +got):\n%s", diff)
	}
	if cfg.Loader.Workers != 4 {
		t.Errorf("Loader.Workers = %d, want 4", cfg.Loader.Workers)
	}
	if cfg.Loader.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Loader.MaxFileSize = %d, want default %d", cfg.Loader.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.Snapshot.Path != DefaultSnapshotPath {
		t.Errorf("Snapshot.Path = %q, want default %q", cfg.Snapshot.Path, DefaultSnapshotPath)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, "debug")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "game: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
watch:
  schedule: "not a cron"
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want ValidationError", err)
	}
	fields := map[string]bool{}
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"game.dir", "watch.schedule"} {
		if !fields[want] {
			t.Errorf("missing FieldError for %s in %v", want, verr.Errors)
		}
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
game:
  dir: "/from/file"
telemetry:
  logging:
    level: "info"
`)

	t.Setenv("CHRONICLE_GAME_DIR", "/from/env")
	t.Setenv("CHRONICLE_GAME_MODS", "a.mod, b.mod,,")
	t.Setenv("CHRONICLE_LOADER_WORKERS", "3")
	t.Setenv("CHRONICLE_LOADER_MAX_FILE_SIZE", "1024")
	t.Setenv("CHRONICLE_WATCH_DEBOUNCE", "250ms")
	t.Setenv("CHRONICLE_SNAPSHOT_ENABLED", "true")
	t.Setenv("CHRONICLE_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("CHRONICLE_TELEMETRY_METRICS_ENABLED", "not-a-bool")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Game.Dir != "/from/env" {
		t.Errorf("Game.Dir = %q, want %q", cfg.Game.Dir, "/from/env")
	}
	if diff := cmp.Diff([]string{"a.mod", "b.mod"}, cfg.Game.Mods); diff != "" {
		t.Errorf("Game.Mods mismatch (-want +got):\n%s", diff)
	}
	if cfg.Loader.Workers != 3 {
		t.Errorf("Loader.Workers = %d, want 3", cfg.Loader.Workers)
	}
	if cfg.Loader.MaxFileSize != 1024 {
		t.Errorf("Loader.MaxFileSize = %d, want 1024", cfg.Loader.MaxFileSize)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
	if !cfg.Snapshot.Enabled {
		t.Error("Snapshot.Enabled = false, want true")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, "warn")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("unparseable bool override should be ignored")
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("CHRONICLE_GAME_DIR", "/env/only")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Game.Dir != "/env/only" {
		t.Errorf("Game.Dir = %q, want %q", cfg.Game.Dir, "/env/only")
	}
	if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Telemetry.Logging.Format, DefaultLoggingFormat)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg
	ApplyDefaults(cfg)
	if diff := cmp.Diff(first, *cfg); diff != "" {
		t.Errorf("second ApplyDefaults changed config (-first +second):\n%s", diff)
	}
	if cfg.Loader.Workers < 1 {
		t.Errorf("Loader.Workers = %d, want >= 1", cfg.Loader.Workers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHRONICLE_GAME_DIR", "/env/dir")

	cfg, err := Load("", func(c *Config) { c.Game.Dir = "/flag/dir" })
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Dir != "/flag/dir" {
		t.Errorf("Game.Dir = %q, want %q", cfg.Game.Dir, "/flag/dir")
	}

	_, err = Load("", func(c *Config) { c.Game.Dir = "" })
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Load() error = %v, want ValidationError", err)
	}
}
