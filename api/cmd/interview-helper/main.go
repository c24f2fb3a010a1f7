package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"interview-helper/api/internal/app"
	"interview-helper/api/internal/config"
	"interview-helper/api/internal/handle"
	"interview-helper/api/internal/httpserver"
	"interview-helper/api/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "interview-helper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{JSON: cfg.LogJSON, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeEngine, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeEngine()

	mux := http.NewServeMux()
	handle.New(svc, log).Register(mux)

	log.Info("Starting "+handle.ServiceName, "model", cfg.GeminiModel, "port", cfg.Port)
	if err := httpserver.Run(ctx, httpserver.New(cfg.Addr(), mux, log), log); err != nil {
		log.Error("Server error", "error", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}
