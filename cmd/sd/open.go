package main

import (
	"os"

	"deadlines/internal/api"
	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/logging"
)

// openBusinessAPI wires logging, the task store and the services from cfg.
// SD_ENV selects the store: production (default), development or testing.
func openBusinessAPI(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	logger, err := logging.New(os.Stderr, cfg.Application.LogLevel, logging.Format(cfg.Application.LogFormat))
	if err != nil {
		return nil, nil, err
	}

	env := config.GetEnvironment()
	logger.Debug("opening task store", "env", env, "path", cfg.GetDatabasePath())

	repo, err := config.NewRepositoryFactory(env, cfg, logger).CreateRepository()
	if err != nil {
		return nil, nil, err
	}

	businessAPI, err := api.NewBusinessAPIFromRepository(repo, cfg, clock.Real(), logger)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return businessAPI, repo.Close, nil
}
