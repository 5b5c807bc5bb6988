package main

import (
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aitlahcen/comptes/pkg/config"
	"github.com/aitlahcen/comptes/pkg/eventbus"
	"github.com/aitlahcen/comptes/pkg/eventstore"
	"github.com/aitlahcen/comptes/pkg/projection"
	"github.com/aitlahcen/comptes/pkg/readmodel"
	"github.com/aitlahcen/comptes/pkg/repository"
	accountsvc "github.com/aitlahcen/comptes/pkg/service/account"
	"github.com/aitlahcen/comptes/webapi"
)

func main() {
	if err := run(); err != nil {
		charmlog.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	store, views, err := setupStorage(cfg, logger)
	if err != nil {
		return err
	}

	bus := eventbus.NewInProcessBus(logger)
	projection.New(views, logger).Register(bus)
	repo := repository.New(store, bus, logger)
	svc := accountsvc.New(repo, views, store, logger)

	app := webapi.New(svc, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}

func setupLogger(cfg config.Log) *slog.Logger {
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		level = charmlog.InfoLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler)
}

// setupStorage selects the database-backed event store and read model when a
// DATABASE_URL is configured, and the in-memory pair otherwise. The in-memory
// pair loses all state on restart and exists for development only.
func setupStorage(cfg *config.App, logger *slog.Logger) (eventstore.Store, readmodel.Repository, error) {
	if cfg.DB.Url == "" {
		logger.Warn("no database configured, using in-memory storage")
		return eventstore.NewMemoryStore(), readmodel.NewMemoryRepository(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.Url), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := eventstore.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate event store: %w", err)
	}
	views := readmodel.NewGormRepository(db)
	if err := views.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate read model: %w", err)
	}
	return store, views, nil
}
