// Package config provides configuration management for the veil CLI.
// It uses YAML configuration with centralized defaults, plus environment
// variable bindings for the database connection parameters, which always
// take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

const (
	// VersionMajor is the major version number
	VersionMajor = 0
	// VersionMinor is the minor version number
	VersionMinor = 3
)

// Version returns the version string in format {major}.{minor}
func Version() string {
	return fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
}

// Environment variables consumed for the database connection.
const (
	EnvDBUsername = "PERSONAL_DATA_DB_USERNAME"
	EnvDBPassword = "PERSONAL_DATA_DB_PASSWORD"
	EnvDBHost     = "PERSONAL_DATA_DB_HOST"
	EnvDBName     = "PERSONAL_DATA_DB_NAME"
)

// Defaults contains all default configuration values
// centralized in one place to avoid hardcoded literals
var Defaults = struct {
	Database struct {
		Username     string
		Password     string
		Host         string
		Name         string
		QueryTimeout int
	}
	Logging struct {
		Path  string
		Level string
	}
	Redaction struct {
		Fields      []string
		Separator   string
		Assign      string
		Placeholder string
	}
	ConfigPath string
}{
	Database: struct {
		Username     string
		Password     string
		Host         string
		Name         string
		QueryTimeout int
	}{
		Username:     "root",
		Password:     "",
		Host:         "localhost",
		Name:         "", // required, no default
		QueryTimeout: 30, // 30 seconds
	},
	Logging: struct {
		Path  string
		Level string
	}{
		Path:  "",
		Level: "info",
	},
	Redaction: struct {
		Fields      []string
		Separator   string
		Assign      string
		Placeholder string
	}{
		Fields:      []string{"name", "email", "phone", "ssn", "password"},
		Separator:   ";",
		Assign:      "=",
		Placeholder: "***",
	},
	ConfigPath: "/etc/veil.conf",
}

// AppConfig holds the application configuration.
// It is designed to be immutable after initialization.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Redaction RedactionConfig `mapstructure:"redaction"`
}

// DatabaseConfig holds database connection configuration. The four
// connection parameters are also bound to PERSONAL_DATA_DB_* environment
// variables; env values override file values.
type DatabaseConfig struct {
	Username     string `mapstructure:"username"`      // database user
	Password     string `mapstructure:"password"`      // database password
	Host         string `mapstructure:"host"`          // database host
	Name         string `mapstructure:"name"`          // database name (required)
	QueryTimeout int    `mapstructure:"query_timeout"` // query timeout in seconds
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Path  string `mapstructure:"path"`  // log file path (empty: stdout only)
	Level string `mapstructure:"level"` // minimum log level
}

// RedactionConfig holds message redaction configuration.
type RedactionConfig struct {
	Fields      []string `mapstructure:"fields"`      // field names to redact
	Separator   string   `mapstructure:"separator"`   // segment separator (single char)
	Assign      string   `mapstructure:"assign"`      // key/value assignment (single char)
	Placeholder string   `mapstructure:"placeholder"` // replacement for redacted values
}

// Load reads the configuration. The file is optional when no explicit path
// is given; environment variables are always consulted and override file
// values for the database connection parameters.
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()

	// Set default values from centralized Defaults struct
	v.SetDefault("database.username", Defaults.Database.Username)
	v.SetDefault("database.password", Defaults.Database.Password)
	v.SetDefault("database.host", Defaults.Database.Host)
	v.SetDefault("database.name", Defaults.Database.Name)
	v.SetDefault("database.query_timeout", Defaults.Database.QueryTimeout)
	v.SetDefault("logging.path", Defaults.Logging.Path)
	v.SetDefault("logging.level", Defaults.Logging.Level)
	v.SetDefault("redaction.fields", Defaults.Redaction.Fields)
	v.SetDefault("redaction.separator", Defaults.Redaction.Separator)
	v.SetDefault("redaction.assign", Defaults.Redaction.Assign)
	v.SetDefault("redaction.placeholder", Defaults.Redaction.Placeholder)

	// Bind the database collaborator's environment variables. These are the
	// canonical configuration surface for deployments; the file is a
	// convenience for everything else.
	_ = v.BindEnv("database.username", EnvDBUsername)
	_ = v.BindEnv("database.password", EnvDBPassword)
	_ = v.BindEnv("database.host", EnvDBHost)
	_ = v.BindEnv("database.name", EnvDBName)

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigFile(Defaults.ConfigPath)

		// Default path is optional - continue with defaults if absent.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				// Viper reports a missing explicit file as a path error,
				// not ConfigFileNotFoundError; treat either as absent.
				if !isNotExist(err) {
					return nil, fmt.Errorf("failed to read config file: %w", err)
				}
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// isNotExist reports whether err means the config file is absent. With an
// explicit SetConfigFile path viper surfaces a plain path error rather than
// ConfigFileNotFoundError.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// validate checks required fields and well-formedness.
func validate(cfg *AppConfig) error {
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required: set %s or database.name", EnvDBName)
	}
	if len(cfg.Redaction.Separator) != 1 {
		return fmt.Errorf("redaction separator must be a single character, got %q", cfg.Redaction.Separator)
	}
	if len(cfg.Redaction.Assign) != 1 {
		return fmt.Errorf("redaction assignment must be a single character, got %q", cfg.Redaction.Assign)
	}
	if cfg.Redaction.Placeholder == "" {
		return fmt.Errorf("redaction placeholder must not be empty")
	}
	if cfg.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database query_timeout must be positive, got %d", cfg.Database.QueryTimeout)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", cfg.Logging.Level)
	}
	return nil
}
