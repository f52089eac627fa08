package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Codelizard/HeroesOfCordan/internal/config"
	"github.com/Codelizard/HeroesOfCordan/internal/handlers"
	"github.com/Codelizard/HeroesOfCordan/internal/logger"
	"github.com/Codelizard/HeroesOfCordan/internal/middleware"
	istorage "github.com/Codelizard/HeroesOfCordan/internal/storage"
	"github.com/Codelizard/HeroesOfCordan/pkg/engine"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Heroes of Cordan API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"catalog", cfg.CatalogPath)

	catalog, err := istorage.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	if missing := catalog.MissingMessages(engine.MessageKeys); len(missing) > 0 {
		log.Warn("Catalog is missing message text", "keys", missing)
	}

	store, locker, err := openStorage(cfg, log)
	if err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage ready", "backend", cfg.StorageBackend)

	game, err := engine.New(engine.Options{
		Content:  catalog,
		Messages: catalog,
		Sessions: store,
		Locker:   locker,
		Logger:   log,
	})
	if err != nil {
		log.Error("Failed to create engine", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/message", handlers.NewMessageHandler(game, log))
	mux.Handle("/v1/session/", handlers.NewSessionHandler(store, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}

func openStorage(cfg *config.Config, log *slog.Logger) (storage.SessionStore, storage.Locker, error) {
	if cfg.StorageBackend != config.BackendRedis {
		return storage.NewMemoryStorage(), storage.NewMemoryLocker(), nil
	}

	store, err := istorage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := store.WaitForConnection(ctx, 10, 2*time.Second); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, istorage.NewRedisLocker(store.Client(), cfg.LockTTL, log), nil
}
