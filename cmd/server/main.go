// Command main is the entry point for the users and posts API server.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postapi/internal/config"
	"postapi/internal/middleware"
	"postapi/internal/observability"
	"postapi/internal/server"
)

// @title API Service
// @version 1.0.0
// @description Users and posts over PostgreSQL.
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.ConfigureLogger(cfg.Env, cfg.LogLevel)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    server.ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	app := srv.App()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.Port, err)
	}

	middleware.Logger.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
	if err := srv.ServeUntil(ctx, app, ln, 10*time.Second, shutdownTracing); err != nil {
		middleware.Logger.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
	middleware.Logger.Info("Server stopped")
}
