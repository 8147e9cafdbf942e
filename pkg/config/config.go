package config

import "time"

// Config is the root configuration structure for chronicle.
// It names the game folders to read, how the loader runs, where snapshots
// go, how watch mode reloads, and how the process reports on itself.
type Config struct {
	// Game locates the base game folder, the mods layered over it and the
	// auxiliary files used for adjacency inference.
	Game GameConfig `yaml:"game"`

	// Loader controls document parsing.
	Loader LoaderConfig `yaml:"loader"`

	// Snapshot controls persistence of the loaded world.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Watch controls reloading when files change or on a schedule.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GameConfig locates the documents to load.
type GameConfig struct {
	// Dir is the base game installation folder.
	Dir string `yaml:"dir"`

	// Mods lists mod descriptor files (.mod) in load order. Later mods
	// override files of earlier mods and of the base game.
	Mods []string `yaml:"mods"`

	// SetupLog is the engine's setup.log, used to infer adjacencies.
	// Optional.
	SetupLog string `yaml:"setup_log"`

	// Documents is an explicit ordered document list relative to Dir.
	// When set it replaces folder discovery entirely.
	Documents []string `yaml:"documents"`
}

// LoaderConfig controls document parsing.
type LoaderConfig struct {
	// Workers is the number of documents parsed concurrently.
	// Default: number of CPUs
	Workers int `yaml:"workers"`

	// MaxFileSize is the largest document accepted, in bytes.
	// Default: 16MB
	MaxFileSize int64 `yaml:"max_file_size"`
}

// SnapshotConfig controls persistence of the loaded world.
type SnapshotConfig struct {
	// Enabled writes a SQLite snapshot after every successful load.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: "data/chronicle.db"
	Path string `yaml:"path"`

	// JSONPath, when set, also exports the world as JSON.
	JSONPath string `yaml:"json_path"`

	// Compress writes the JSON export xz-compressed.
	// Default: false
	Compress bool `yaml:"compress"`
}

// WatchConfig controls reloads.
type WatchConfig struct {
	// Enabled turns on file watching.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Debounce is the quiet period after the last change before reloading.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic reloads.
	// Example: "0 */6 * * *"
	Schedule string `yaml:"schedule"`

	// Extensions lists the file extensions that trigger a reload.
	// Default: [".txt", ".map", ".csv", ".mod", ".log"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health endpoint configuration for watch mode.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "chronicle"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "loader"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path for the Prometheus metrics endpoint in watch mode.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// ListenAddress serves metrics and health endpoints in watch mode.
	// Empty disables the HTTP endpoint.
	ListenAddress string `yaml:"listen_address"`

	// Textfile, when set, writes metrics in the node exporter textfile
	// format after every load.
	Textfile string `yaml:"textfile"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "chronicle"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are served with metrics.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Ready once a world has been loaded.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`
}
