package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/ingest"
	"github.com/meetpilot/meetpilot/internal/issuesync"
	"github.com/meetpilot/meetpilot/internal/llm"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/pipeline"
	"github.com/meetpilot/meetpilot/internal/report"
	"github.com/meetpilot/meetpilot/internal/speech"
	"github.com/meetpilot/meetpilot/internal/store"
	"github.com/meetpilot/meetpilot/internal/tracker"
	"github.com/meetpilot/meetpilot/internal/watcher"
	"github.com/meetpilot/meetpilot/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Secrets come from the environment; .env is a convenience.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "meetpilot - meeting audio to tracked work")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Speech provider: %s", cfg.Speech.Provider)
	log.Info(ctx, "Gemini model: %s", cfg.Gemini.Model)
	if cfg.GitHub.Configured() {
		log.Info(ctx, "GitHub repository: %s/%s (auto sync: %v)", cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.AutoSync)
	}

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	recordStore, err := store.NewFile(cfg.Paths.Store)
	if err != nil {
		log.Error(ctx, "Failed to open record store: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	transcriber, err := speech.New(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create speech backend: %v", err)
		os.Exit(1)
	}
	language, err := llm.New(cfg.Gemini, log)
	if err != nil {
		log.Error(ctx, "Failed to create language backend: %v", err)
		os.Exit(1)
	}

	pipe := pipeline.New(recordStore, transcriber, language, log)
	syncer := issuesync.New(tracker.NewGitHub(log), language, log)
	handler := ingest.New(cfg, pipe, syncer, report.New(log), log)

	w, err := watcher.New(cfg.Paths.Input, handler.Handle, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Reports: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	pipe.Wait()

	log.Info(ctx, "meetpilot stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archive,
		cfg.Paths.Store,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
