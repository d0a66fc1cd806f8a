package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/solar-flare-service/internal/adapter/donki"
	httpadapter "github.com/couchcryptid/solar-flare-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/solar-flare-service/internal/adapter/kafka"
	"github.com/couchcryptid/solar-flare-service/internal/config"
	"github.com/couchcryptid/solar-flare-service/internal/observability"
	"github.com/couchcryptid/solar-flare-service/internal/viewer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := donki.NewClient(cfg.DONKIBaseURL, cfg.DONKIAPIKey, cfg.DONKITimeout, metrics, logger)

	// Kafka publication is feature-flagged via KAFKA_ENABLED.
	var publisher viewer.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := viewer.New(client, publisher, viewer.NewStore(cfg.SunRadius), logger, metrics, viewer.Settings{
		RefreshInterval:  cfg.RefreshInterval,
		DefaultRangeDays: cfg.DefaultRangeDays,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("viewer error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
