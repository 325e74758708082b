package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vibetimer/vibetimer/internal/config"
	"github.com/vibetimer/vibetimer/internal/diskstore"
	"github.com/vibetimer/vibetimer/internal/domain/timer"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/repository"
	"github.com/vibetimer/vibetimer/internal/sqlite"
	"github.com/vibetimer/vibetimer/internal/transport"
)

func main() {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	vibeRepo, ledgerRepo, closeStore, err := openStore(cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	vibeSvc := vibe.NewService(vibeRepo, ledgerRepo, logger)
	timerSvc := timer.NewService(ledgerRepo, vibeRepo, logger)

	if err := vibeSvc.EnsureDefaults(context.Background()); err != nil {
		logger.Error("failed to seed default vibes", "error", err)
		os.Exit(1)
	}

	router := transport.NewRouter(vibeSvc, timerSvc, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.Store.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// openStore builds the configured persistence backend. Both backends
// satisfy the same repository interfaces, so everything above this call
// is driver agnostic.
func openStore(cfg config.StoreConfig) (repository.VibeRepository, repository.LedgerRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return sqlite.NewVibeRepository(db), sqlite.NewLedgerRepository(db), func() { db.Close() }, nil
	case config.DriverDisk:
		store, err := diskstore.Open(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.Vibes(), store.Ledger(), func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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
