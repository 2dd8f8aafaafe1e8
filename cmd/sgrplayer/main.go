package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sglre6355/sgrplayer/internal/app"
	_ "github.com/sglre6355/sgrplayer/internal/modules/health"
	_ "github.com/sglre6355/sgrplayer/internal/modules/music_player"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/sgrplayer
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Optional .env file, real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("starting sgrplayer", "version", version, "addr", cfg.HTTPAddr)

	// Create and configure app
	a := app.NewApp(cfg)
	a.LoadModules()

	// Start app
	if err := a.Start(); err != nil {
		slog.Error("failed to start app", "error", err)
		os.Exit(1)
	}

	// Wait for shutdown signal or a server failure
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-stop:
		slog.Info("received termination signal, shutting down")
	case err := <-a.Errors():
		slog.Error("http server failed", "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := a.Stop(ctx); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}
	cancel()

	slog.Info("completed shutdown")
	os.Exit(exitCode)
}
