package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFileName is looked up under the database directory.
const DefaultConfigFileName = "config.toml"

// fileConfig is the on-disk TOML shape. Durations are written as strings
// such as "5s".
type fileConfig struct {
	Database struct {
		Dir            string `toml:"dir"`
		Filename       string `toml:"filename"`
		QueryTimeout   string `toml:"query_timeout"`
		WriteTimeout   string `toml:"write_timeout"`
		BusyTimeout    string `toml:"busy_timeout"`
		DirPermissions uint32 `toml:"dir_permissions"`
	} `toml:"database"`
	Urgency struct {
		WindowDays    int    `toml:"window_days"`
		MaxWindowDays int    `toml:"max_window_days"`
		DayRule       string `toml:"day_rule"`
	} `toml:"urgency"`
	Validation struct {
		TitleMinLength    int `toml:"title_min_length"`
		TitleMaxLength    int `toml:"title_max_length"`
		CategoryMaxLength int `toml:"category_max_length"`
		MaxDueYears       int `toml:"max_due_years"`
	} `toml:"validation"`
	Display struct {
		TimeFormat string `toml:"time_format"`
		Color      bool   `toml:"color"`
	} `toml:"display"`
	Application struct {
		Timeout   string `toml:"timeout"`
		Verbose   bool   `toml:"verbose"`
		LogLevel  string `toml:"log_level"`
		LogFormat string `toml:"log_format"`
	} `toml:"application"`
	Commands struct {
		ListDefaultFormat string `toml:"list_default_format"`
		ListDefaultView   string `toml:"list_default_view"`
	} `toml:"commands"`
}

func toFile(c *Config) fileConfig {
	var f fileConfig
	f.Database.Dir = c.Database.Dir
	f.Database.Filename = c.Database.Filename
	f.Database.QueryTimeout = c.Database.QueryTimeout.String()
	f.Database.WriteTimeout = c.Database.WriteTimeout.String()
	f.Database.BusyTimeout = c.Database.BusyTimeout.String()
	f.Database.DirPermissions = c.Database.DirPermissions
	f.Urgency.WindowDays = c.Urgency.WindowDays
	f.Urgency.MaxWindowDays = c.Urgency.MaxWindowDays
	f.Urgency.DayRule = c.Urgency.DayRule
	f.Validation.TitleMinLength = c.Validation.TitleMinLength
	f.Validation.TitleMaxLength = c.Validation.TitleMaxLength
	f.Validation.CategoryMaxLength = c.Validation.CategoryMaxLength
	f.Validation.MaxDueYears = c.Validation.MaxDueYears
	f.Display.TimeFormat = c.Display.TimeFormat
	f.Display.Color = c.Display.Color
	f.Application.Timeout = c.Application.Timeout.String()
	f.Application.Verbose = c.Application.Verbose
	f.Application.LogLevel = c.Application.LogLevel
	f.Application.LogFormat = c.Application.LogFormat
	f.Commands.ListDefaultFormat = c.Commands.ListDefaultFormat
	f.Commands.ListDefaultView = c.Commands.ListDefaultView
	return f
}

func (f fileConfig) apply(c *Config) error {
	durations := []struct {
		field string
		value string
		dst   *time.Duration
	}{
		{"database.query_timeout", f.Database.QueryTimeout, &c.Database.QueryTimeout},
		{"database.write_timeout", f.Database.WriteTimeout, &c.Database.WriteTimeout},
		{"database.busy_timeout", f.Database.BusyTimeout, &c.Database.BusyTimeout},
		{"application.timeout", f.Application.Timeout, &c.Application.Timeout},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return &ConfigError{Field: d.field, Message: "invalid duration: " + d.value}
		}
		*d.dst = parsed
	}

	c.Database.Dir = f.Database.Dir
	c.Database.Filename = f.Database.Filename
	c.Database.DirPermissions = f.Database.DirPermissions
	c.Urgency.WindowDays = f.Urgency.WindowDays
	c.Urgency.MaxWindowDays = f.Urgency.MaxWindowDays
	c.Urgency.DayRule = f.Urgency.DayRule
	c.Validation.TitleMinLength = f.Validation.TitleMinLength
	c.Validation.TitleMaxLength = f.Validation.TitleMaxLength
	c.Validation.CategoryMaxLength = f.Validation.CategoryMaxLength
	c.Validation.MaxDueYears = f.Validation.MaxDueYears
	c.Display.TimeFormat = f.Display.TimeFormat
	c.Display.Color = f.Display.Color
	c.Application.Verbose = f.Application.Verbose
	c.Application.LogLevel = f.Application.LogLevel
	c.Application.LogFormat = f.Application.LogFormat
	c.Commands.ListDefaultFormat = f.Commands.ListDefaultFormat
	c.Commands.ListDefaultView = f.Commands.ListDefaultView
	return nil
}

// DefaultConfigPath returns $SD_CONFIG, or config.toml under ~/.sd.
func DefaultConfigPath() string {
	if p := os.Getenv("SD_CONFIG"); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".sd", DefaultConfigFileName)
}

// LoadFromFile overlays values from a TOML file. Keys absent from the file
// keep their current values; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ConfigError{Field: "file", Message: err.Error()}
	}

	f := toFile(c)
	if err := toml.Unmarshal(data, &f); err != nil {
		return &ConfigError{Field: "file", Message: "invalid TOML in " + path + ": " + err.Error()}
	}
	return f.apply(c)
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(toFile(c))
}

// WriteFile writes the configuration to path, creating parent directories.
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadOrCreateFile reads path, first writing the current configuration
// there when the file does not exist. Reports whether the file was created.
func (c *Config) LoadOrCreateFile(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := c.WriteFile(path); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, c.LoadFromFile(path)
}
