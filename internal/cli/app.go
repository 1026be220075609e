package cli

import (
	"context"
	"fmt"

	"github.com/vijay-prabhu/perfumex/internal/advisor"
	"github.com/vijay-prabhu/perfumex/internal/config"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/logging"
)

// app bundles what a command needs once the config is loaded
type app struct {
	cfg     *config.Config
	db      *database.DB
	advisor *advisor.Advisor
}

// loadConfig reads the config file, falling back to defaults, and sets up logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logging.Init(logging.Config{Level: level, Format: cfg.Logging.Format})
	logging.Debug().Str("config", configPath).Msg("configuration loaded")

	return cfg, nil
}

// openApp loads config, opens the database and seeds the catalog on first use
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	engine := expert.New(expert.Options{Language: expert.Language(cfg.Recommend.Language)})
	a := &app{cfg: cfg, db: db, advisor: advisor.New(db, engine)}

	if err := a.advisor.EnsureCatalog(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
