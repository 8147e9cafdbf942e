package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/telemetry/logging"
)

// defaultConfigFile is read when --config is not given and the file exists.
const defaultConfigFile = "chronicle.yaml"

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
	gameDir      string
	modFiles     []string
)

var rootCmd = &cobra.Command{
	Use:   "chronicle",
	Short: "Chronicle - game data loader and world builder",
	Long: `Chronicle reads the nested key = value game-data dialect and builds a
deterministic, cross-referenced world from it.

It provides:
  - Ordered loading of the base game folder and mods
  - The landed title hierarchy, from empires down to baronies
  - Province adjacency from the map, adjacency tables and setup.log
  - Religion, culture and dynasty linking with diagnostics
  - SQLite snapshots and JSON export of every load`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code of its error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default "+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, csv")
	rootCmd.PersistentFlags().StringVarP(&gameDir, "game-dir", "g", "", "override game.dir")
	rootCmd.PersistentFlags().StringSliceVar(&modFiles, "mod", nil, "override game.mods (repeatable, in load order)")
}

// loadConfig reads the configuration file, the environment and the global
// flags, in increasing precedence.
func loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := config.Load(path, append([]func(*config.Config){flagOverrides}, overrides...)...)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, cli.NewConfigError("config", err.Error())
	}
	return cfg, nil
}

func flagOverrides(cfg *config.Config) {
	if gameDir != "" {
		cfg.Game.Dir = gameDir
	}
	if len(modFiles) > 0 {
		cfg.Game.Mods = modFiles
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

func newLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Writer:    os.Stderr,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// formatter returns the formatter selected by --output.
func formatter() (cli.Formatter, error) {
	format, err := cli.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return cli.NewFormatter(format), nil
}

// loggingConfig is the logger used by commands that run without a
// configuration file.
func loggingConfig(level string) config.LoggingConfig {
	return config.LoggingConfig{Level: level, Format: config.DefaultLoggingFormat}
}
