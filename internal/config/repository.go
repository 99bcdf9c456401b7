package config

import (
	"fmt"
	"log/slog"
	"os"

	"deadlines/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads SD_ENV, defaulting to production.
func GetEnvironment() Environment {
	switch Environment(os.Getenv("SD_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
	logger *slog.Logger
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *Config, logger *slog.Logger) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: cfg, logger: logger}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// Local database file in the working directory
		dev := *rf.config
		dev.Database.Dir = "."
		return CreateRepository(&dev, rf.logger)
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(rf.config, rf.logger)
	}
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config, logger *slog.Logger) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
		QueryTimeout:   config.Database.QueryTimeout,
		WriteTimeout:   config.Database.WriteTimeout,
		BusyTimeout:    config.Database.BusyTimeout,
		DirPermissions: os.FileMode(config.Database.DirPermissions),
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
