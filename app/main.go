package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syndcheck/syndcheck/app/api"
	"github.com/syndcheck/syndcheck/app/cfg"
	"github.com/syndcheck/syndcheck/app/database"
	"github.com/syndcheck/syndcheck/app/fetch"
	"github.com/syndcheck/syndcheck/app/fidelity"
	"github.com/syndcheck/syndcheck/app/schema"
	"github.com/syndcheck/syndcheck/app/tasks"
	"github.com/syndcheck/syndcheck/app/watch"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting SyndCheck server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.CachePath)
	if err != nil {
		slog.Error("Failed to open page cache database", "path", appCfg.CachePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	configCache := watch.NewConfigCache(appCfg.WatchesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load watch configurations", "dir", appCfg.WatchesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Watch configurations loaded", "count", configCache.GetConfigCount())

	scoringConfig, err := fidelity.LoadConfig(appCfg.ScoringConfigPath)
	if err != nil {
		slog.Error("Failed to load scoring configuration", "path", appCfg.ScoringConfigPath, "error", err)
		os.Exit(1)
	}

	scorer := fidelity.NewScorer(scoringConfig)
	extractor := schema.NewExtractor()
	resultStore := watch.NewResultStore()

	pageRepo := database.NewPageRepository(db)
	client := fetch.NewClient(appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second,
		pageRepo,
		time.Duration(appCfg.CacheTTL)*time.Second)

	scheduler := tasks.NewScheduler(configCache, resultStore, client, extractor, scorer, pageRepo)
	scheduler.Start()
	defer scheduler.Stop()

	httpClient := &http.Client{}
	handler := api.NewHandler(configCache, resultStore, client, extractor, scorer,
		scheduler, httpClient, appCfg.UserAgent)
	router := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("SyndCheck server shutdown complete")
}
