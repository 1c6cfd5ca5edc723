package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/readlater/internal/api"
	"github.com/hoanghai1803/readlater/internal/config"
	"github.com/hoanghai1803/readlater/internal/dispatch"
	"github.com/hoanghai1803/readlater/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "readlater.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Best-effort cleanup of expired completed links; must never block
	// or fail startup.
	if cfg.Cleanup.RunOnStartup {
		if n := store.CleanupCompleted(ctx); n > 0 {
			slog.Info("startup cleanup removed completed links", "count", n)
		}
	}

	dispatcher := dispatch.NewDispatcher(store)
	router := api.NewRouter(store, dispatcher, cfg)

	// Localhost only: the server speaks to the user's own browser.
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Cleanup.IntervalHours > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(time.Duration(cfg.Cleanup.IntervalHours) * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if n := store.CleanupCompleted(ctx); n > 0 {
						slog.Info("periodic cleanup removed completed links", "count", n)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server shut down")
}
