package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"didimdol_landing_go/config"
	"didimdol_landing_go/logger"
	"didimdol_landing_go/server"
	"didimdol_landing_go/services"
	"didimdol_landing_go/services/i18n"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog := logger.New(logger.Options{
		Level:       cfg.LoggerLevel,
		Format:      cfg.LoggerFormat,
		OutputPath:  cfg.LoggerOutputPath,
		Environment: cfg.Environment,
	})
	defer func() { _ = zlog.Sync() }()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Notion is optional; without it the relay only logs submissions
	var notion services.NotionClient
	if cfg.NotionConfigured() {
		notion = services.NewNotionClient(cfg.NotionAPIKey, cfg.NotionAPIURL, &http.Client{})
	}
	relay := services.NewConsultationRelay(cfg.Relay(), notion, zlog)

	e := server.New(server.Options{
		Config: cfg,
		Logger: zlog,
		Relay:  relay,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server
	go func() {
		zlog.Info("server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("environment", cfg.Environment),
			zap.Bool("notion", relay.Configured()),
		)
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
