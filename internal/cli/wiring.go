package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganot/procflow/internal/config"
	"github.com/ganot/procflow/internal/jsonstore"
	"github.com/ganot/procflow/internal/repository"
	"github.com/ganot/procflow/internal/sqlite"
)

// env bundles what every command needs: loaded config, a logger and the
// configured document store.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  repository.DocumentStore
	close  func()
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	e := &env{cfg: cfg, logger: logger, close: func() {}}

	switch cfg.Store.Backend {
	case "sqlite":
		if err := ensureDir(cfg.Store.Path); err != nil {
			return nil, fmt.Errorf("preparing store path: %w", err)
		}
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		e.store = sqlite.NewStore(db)
		e.close = func() { db.Close() }
	default:
		e.store = jsonstore.New(cfg.Store.Path)
	}

	return e, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
