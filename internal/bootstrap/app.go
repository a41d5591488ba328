// Package bootstrap handles application initialization and lifecycle
// management for the scheduler service.
package bootstrap

import (
	"fmt"

	"github.com/tracklawn/scheduler/internal/jobsclient"
	"github.com/tracklawn/scheduler/internal/logger"
	"github.com/tracklawn/scheduler/internal/repository"
	"github.com/tracklawn/scheduler/internal/scheduler"
	"github.com/tracklawn/scheduler/internal/worker"
)

const version = "dev"

// Start initializes and starts the scheduler application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup database
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: Wire the scheduling service
	seriesRepo := repository.NewSeriesRepository(db.DB())
	instanceRepo := repository.NewInstanceRepository(db.DB())
	jobs := jobsclient.NewClient(cfg.Jobs.BaseURL)
	service := scheduler.NewService(seriesRepo, instanceRepo, jobs, log)

	// Phase 5: Start the regeneration worker (optional)
	if cfg.Worker.Enabled {
		w := worker.New(service, cfg.Worker.Schedule, cfg.Worker.HorizonDays, log)
		if startErr := w.Start(); startErr != nil {
			return fmt.Errorf("failed to start regeneration worker: %w", startErr)
		}
		defer w.Stop()
	}

	// Phase 6: Run the HTTP server until shutdown
	server := SetupHTTPServer(cfg, service, publisher, log)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
