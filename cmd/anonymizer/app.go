package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
	"github.com/codeready-toolchain/anonymizer/pkg/database"
	"github.com/codeready-toolchain/anonymizer/pkg/history"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	service  *anonymizer.Service
	dbClient *database.Client // nil when history is disabled
	history  *history.Store
}

// bootstrap loads .env and configuration, connects the history store when
// enabled and builds the anonymizer service.
func bootstrap(ctx context.Context, configDir string) (*app, error) {
	envPath := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	a := &app{cfg: cfg}

	var recorder assistant.HistoryRecorder
	if cfg.History.Enabled {
		dbConfig, err := database.LoadConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
		a.dbClient, err = database.NewClient(ctx, dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.history = history.NewStore(a.dbClient)
		recorder = a.history
		slog.Info("Connected to PostgreSQL history store", "host", dbConfig.Host, "database", dbConfig.Database)
	}

	a.service, err = anonymizer.NewServiceFromConfig(cfg, nil, recorder)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize anonymizer: %w", err)
	}
	return a, nil
}

func (a *app) close() {
	if a.dbClient == nil {
		return
	}
	if err := a.dbClient.Close(); err != nil {
		slog.Error("Error closing database client", "error", err)
	}
}
