package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Raghavaaa/lindia-b/internal/config"
	"github.com/Raghavaaa/lindia-b/internal/di"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/env"
)

func main() {
	cfg, err := config.Load(env.NewEnvService())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer container.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	container.Logger.Info("Starting server",
		"service", config.ServiceName,
		"version", config.Version,
		"addr", cfg.Addr(),
		"ai_engine", cfg.AIEngine.URL,
	)
	if err := container.Server.Run(ctx); err != nil {
		container.Logger.Error("Server stopped", "error", err)
		container.Close()
		os.Exit(1)
	}
	container.Logger.Info("Server stopped")
}
