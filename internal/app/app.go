// Package app wires storage, the engine and the director together for the
// draftboard binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal/config"
	"github.com/malexanderboyd/pwr9-draftboard/internal/director"
	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
	"github.com/malexanderboyd/pwr9-draftboard/internal/persistence"
	"github.com/malexanderboyd/pwr9-draftboard/internal/storage"
)

type App struct {
	Config   *config.Config
	Store    storage.Store
	Engine   *draft.Engine
	Director *director.Director
}

// New opens the configured store, restores any saved draft and returns a
// director ready to Listen.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	store, err := storage.Open(ctx, cfg.Storage.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	snapshots := persistence.NewSnapshotStore(store, cfg.SnapshotKey, logger.Named("persistence"))
	engine, err := draft.NewEngine(&draft.EngineConfig{
		Options: cfg.Options(),
		Saver:   snapshots,
		Logger:  logger.Named("engine"),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if snapshots.Restore(ctx, engine) {
		logger.Infow("restored draft", "picks", len(engine.Picks()), "backend", cfg.Storage.Backend)
	}
	if cfg.LoadSample {
		added, err := engine.AddSamplePicks(ctx)
		if err != nil {
			logger.Warnw("could not draft every sample player", "error", err)
		}
		logger.Infow("drafted sample players", "added", len(added))
	}

	d, err := director.NewDirector(director.Config{
		Engine:         engine,
		Logger:         logger.Named("director"),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{Config: cfg, Store: store, Engine: engine, Director: d}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
