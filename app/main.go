package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newslens/app/api"
	"newslens/app/cfg"
	"newslens/app/config"
	"newslens/app/database"
	"newslens/app/fetch"
	"newslens/app/tasks"
	"newslens/app/translate"
)

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully.
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting NewsLens server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	itemRepo := database.NewItemRepository(db)
	metaRepo := database.NewMetadataRepository(db)
	configStore := config.NewStore(appCfg.ConfigPath)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	fetcher := fetch.NewFetcher(httpClient, appCfg.UserAgent)

	var translator translate.Translator = translate.NewGoogleTranslator(appCfg.TranslateEndpoint)
	if appCfg.RedisAddr != "" {
		cached, err := translate.NewCachedTranslator(translator, appCfg.RedisAddr)
		if err != nil {
			slog.Warn("Translation cache unavailable, translating without cache", "addr", appCfg.RedisAddr, "error", err)
		} else {
			defer cached.Close()
			translator = cached
			slog.Info("Translation cache enabled", "addr", appCfg.RedisAddr)
		}
	}

	scheduler := tasks.NewScheduler(configStore, itemRepo, metaRepo, fetcher, httpClient)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	handler := api.NewHandler(itemRepo, metaRepo, configStore, fetcher, translator, scheduler)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
