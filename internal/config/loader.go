package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a loader reading the default config file location
func NewLoader() *Loader {
	return NewLoaderWithFile(DefaultConfigPath())
}

// NewLoaderWithFile creates a loader reading the given TOML file. An empty
// path skips the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// FilePath returns the config file the loader reads.
func (l *Loader) FilePath() string {
	return l.filePath
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.filePath != "" {
		if err := l.config.LoadFromFile(l.filePath); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Urgency overrides
	WindowDays *int
	DayRule    *string

	// Display overrides
	TimeFormat *string
	Color      *bool

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string

	// Commands overrides
	ListDefaultFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	if overrides.WindowDays != nil {
		config.Urgency.WindowDays = *overrides.WindowDays
	}
	if overrides.DayRule != nil {
		config.Urgency.DayRule = *overrides.DayRule
	}

	if overrides.TimeFormat != nil {
		config.Display.TimeFormat = *overrides.TimeFormat
	}
	if overrides.Color != nil {
		config.Display.Color = *overrides.Color
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
		if *overrides.Verbose {
			config.Application.LogLevel = "debug"
		}
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}

	if overrides.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *overrides.ListDefaultFormat
	}
}
