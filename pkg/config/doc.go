// Package config provides configuration management for chronicle.
//
// Configuration is read from a YAML file, completed with defaults and then
// overridden from the environment:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("chronicle.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CHRONICLE_SECTION_FIELD:
//
//   - CHRONICLE_GAME_DIR overrides game.dir
//   - CHRONICLE_GAME_MODS overrides game.mods (comma-separated)
//   - CHRONICLE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Precedence
//
//  1. Default values (defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Overrides passed to Load
//  5. Validation, which collects every FieldError before failing
//
// # Overrides
//
// Load applies caller overrides after the environment and before
// validation, so a command-line flag can supply a required field:
//
//	cfg, err := config.Load(path, func(c *config.Config) { c.Game.Dir = dir })
//
// # Example Configuration
//
//	game:
//	  dir: "/games/ck2"
//	  mods:
//	    - "/games/ck2/mod/better_titles.mod"
//	  setup_log: "/home/me/Documents/ck2/logs/setup.log"
//
//	snapshot:
//	  enabled: true
//	  path: "data/chronicle.db"
//
//	watch:
//	  enabled: true
//	  debounce: "1s"
//	  schedule: "0 */6 * * *"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
package config
