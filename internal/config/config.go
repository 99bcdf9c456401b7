package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the deadline tracker
type Config struct {
	Database    DatabaseConfig
	Urgency     UrgencyConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"SD_DB_DIR"`
	Filename       string        `env:"SD_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"SD_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"SD_DB_WRITE_TIMEOUT"`
	BusyTimeout    time.Duration `env:"SD_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `env:"SD_DB_DIR_PERMISSIONS"`
}

// UrgencyConfig holds the day-window settings
type UrgencyConfig struct {
	WindowDays    int    `env:"SD_URGENT_WINDOW_DAYS"`
	MaxWindowDays int    `env:"SD_URGENT_MAX_WINDOW_DAYS"`
	DayRule       string `env:"SD_DAY_RULE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength    int `env:"SD_VALIDATION_TITLE_MIN"`
	TitleMaxLength    int `env:"SD_VALIDATION_TITLE_MAX"`
	CategoryMaxLength int `env:"SD_VALIDATION_CATEGORY_MAX"`
	MaxDueYears       int `env:"SD_VALIDATION_MAX_DUE_YEARS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"SD_DISPLAY_TIME_FORMAT"`
	Color      bool   `env:"SD_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `env:"SD_APP_TIMEOUT"`
	Verbose   bool          `env:"SD_APP_VERBOSE"`
	LogLevel  string        `env:"SD_LOG_LEVEL"`
	LogFormat string        `env:"SD_LOG_FORMAT"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `env:"SD_LIST_DEFAULT_FORMAT"`
	ListDefaultView   string `env:"SD_LIST_DEFAULT_VIEW"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".sd")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "sd.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Urgency: UrgencyConfig{
			WindowDays:    3,
			MaxWindowDays: 365,
			DayRule:       "calendar",
		},
		Validation: ValidationConfig{
			TitleMinLength:    1,
			TitleMaxLength:    255,
			CategoryMaxLength: 64,
			MaxDueYears:       10,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
			Color:      true,
		},
		Application: ApplicationConfig{
			Timeout:   30 * time.Second,
			Verbose:   false,
			LogLevel:  "warn",
			LogFormat: "text",
		},
		Commands: CommandsConfig{
			ListDefaultFormat: "table",
			ListDefaultView:   "today",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// envReader collects the first parse failure so a bad variable is reported
// instead of silently ignored.
type envReader struct {
	err error
}

func (r *envReader) str(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (r *envReader) duration(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" || r.err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.err = &ConfigError{Field: key, Message: "invalid duration: " + v}
		return
	}
	*dst = d
}

func (r *envReader) integer(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" || r.err != nil {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.err = &ConfigError{Field: key, Message: "invalid integer: " + v}
		return
	}
	*dst = n
}

func (r *envReader) boolean(key string, dst *bool) {
	v := os.Getenv(key)
	if v == "" || r.err != nil {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.err = &ConfigError{Field: key, Message: "invalid boolean: " + v}
		return
	}
	*dst = b
}

func (r *envReader) octal(key string, dst *uint32) {
	v := os.Getenv(key)
	if v == "" || r.err != nil {
		return
	}
	p, err := strconv.ParseUint(v, 8, 32)
	if err != nil {
		r.err = &ConfigError{Field: key, Message: "invalid permissions: " + v}
		return
	}
	*dst = uint32(p)
}

// LoadFromEnvironment loads configuration from SD_* environment variables
func (c *Config) LoadFromEnvironment() error {
	r := &envReader{}

	r.str("SD_DB_DIR", &c.Database.Dir)
	r.str("SD_DB_FILENAME", &c.Database.Filename)
	r.duration("SD_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout)
	r.duration("SD_DB_WRITE_TIMEOUT", &c.Database.WriteTimeout)
	r.duration("SD_DB_BUSY_TIMEOUT", &c.Database.BusyTimeout)
	r.octal("SD_DB_DIR_PERMISSIONS", &c.Database.DirPermissions)

	r.integer("SD_URGENT_WINDOW_DAYS", &c.Urgency.WindowDays)
	r.integer("SD_URGENT_MAX_WINDOW_DAYS", &c.Urgency.MaxWindowDays)
	r.str("SD_DAY_RULE", &c.Urgency.DayRule)

	r.integer("SD_VALIDATION_TITLE_MIN", &c.Validation.TitleMinLength)
	r.integer("SD_VALIDATION_TITLE_MAX", &c.Validation.TitleMaxLength)
	r.integer("SD_VALIDATION_CATEGORY_MAX", &c.Validation.CategoryMaxLength)
	r.integer("SD_VALIDATION_MAX_DUE_YEARS", &c.Validation.MaxDueYears)

	r.str("SD_DISPLAY_TIME_FORMAT", &c.Display.TimeFormat)
	r.boolean("SD_DISPLAY_COLOR", &c.Display.Color)
	if os.Getenv("NO_COLOR") != "" {
		c.Display.Color = false
	}

	r.duration("SD_APP_TIMEOUT", &c.Application.Timeout)
	r.boolean("SD_APP_VERBOSE", &c.Application.Verbose)
	r.str("SD_LOG_LEVEL", &c.Application.LogLevel)
	r.str("SD_LOG_FORMAT", &c.Application.LogFormat)

	r.str("SD_LIST_DEFAULT_FORMAT", &c.Commands.ListDefaultFormat)
	r.str("SD_LIST_DEFAULT_VIEW", &c.Commands.ListDefaultView)

	return r.err
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	if c.Urgency.MaxWindowDays < 0 {
		return &ConfigError{Field: "urgency.max_window_days", Message: "maximum window cannot be negative"}
	}
	if c.Urgency.WindowDays < 0 || c.Urgency.WindowDays > c.Urgency.MaxWindowDays {
		return &ConfigError{Field: "urgency.window_days", Message: "window must be between 0 and the maximum window"}
	}
	switch c.Urgency.DayRule {
	case "calendar", "elapsed+1", "elapsed":
	default:
		return &ConfigError{Field: "urgency.day_rule", Message: "day rule must be calendar or elapsed+1"}
	}

	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.CategoryMaxLength < 1 {
		return &ConfigError{Field: "validation.category_max_length", Message: "category maximum length must be at least 1"}
	}
	if c.Validation.MaxDueYears < 1 {
		return &ConfigError{Field: "validation.max_due_years", Message: "due date horizon must be at least one year"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch strings.ToLower(c.Application.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be debug, info, warn or error"}
	}
	switch c.Application.LogFormat {
	case "text", "json":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be text or json"}
	}

	switch c.Commands.ListDefaultFormat {
	case "table", "json", "yaml":
	default:
		return &ConfigError{Field: "commands.list_default_format", Message: "list format must be table, json or yaml"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
