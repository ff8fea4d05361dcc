package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cv-portfolio/internal/app"
	"cv-portfolio/internal/config"
	"cv-portfolio/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()

	otelShutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("server listening", "port", cfg.Server.Port)
		if err := a.Fiber.Listen(":" + cfg.Server.Port); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	if err := a.Fiber.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	a.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := otelShutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown", "error", err)
	}
	slog.Info("server exited")
}
