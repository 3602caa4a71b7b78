package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/adapters/event"
	"github.com/mozzabt/portfolio/adapters/media_storage"
	"github.com/mozzabt/portfolio/adapters/persistence"
	backupUC "github.com/mozzabt/portfolio/internal/application/usecase/backup"
	overrideUC "github.com/mozzabt/portfolio/internal/application/usecase/override"
	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
	"github.com/mozzabt/portfolio/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio Snapshot Worker...")

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if !cfg.KafkaEnabled() {
		appLogger.Fatal("worker needs kafka.brokers", nil)
	}
	if cfg.Storage.Driver == config.StorageMemory {
		appLogger.Fatal("worker cannot share in-memory storage with the server", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "portfolio-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Storage shared with the server
	storage, closeStorage, err := persistence.OpenSlotStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open slot storage", err)
	}
	defer closeStorage()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Read-only store: the worker never mutates, so it publishes nothing.
	store := overrideUC.NewStore(storage, portfolio.NewSlotKeys(cfg.Storage.Namespace), nil, appLogger)
	archiveUC := backupUC.NewBackupUseCase(store, uploader, appLogger, backupUC.WithRetention(cfg.Backup.Keep))

	// Kafka Consumer
	consumer := event.NewOverrideEventsReader(cfg)
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", consumer.Config().Topic))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		payload, err := event.DecodeOverrideEvent(msg.Value)
		if err != nil {
			appLogger.Error("Skipping malformed event", err, zap.String("key", string(msg.Key)))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if _, err := archiveUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to archive snapshot", err, zap.String("event_id", payload.EventID.String()))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
