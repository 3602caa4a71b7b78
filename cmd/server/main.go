package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/adapters/event"
	httpAdapter "github.com/mozzabt/portfolio/adapters/http"
	"github.com/mozzabt/portfolio/adapters/persistence"
	"github.com/mozzabt/portfolio/internal/application/service"
	overrideUC "github.com/mozzabt/portfolio/internal/application/usecase/override"
	profileUC "github.com/mozzabt/portfolio/internal/application/usecase/profile"
	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
	"github.com/mozzabt/portfolio/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "portfolio-server")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Storage
	storage, closeStorage, err := persistence.OpenSlotStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open slot storage", err, zap.String("driver", cfg.Storage.Driver))
	}
	defer closeStorage()

	// Events
	var publisher service.EventPublisher = service.NoopPublisher{}
	if cfg.KafkaEnabled() {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Use Cases
	store := overrideUC.NewStore(
		storage,
		portfolio.NewSlotKeys(cfg.Storage.Namespace),
		publisher,
		appLogger.With(zap.String("component", "override_store")),
		overrideUC.WithStrictDecode(cfg.Storage.StrictDecode),
	)
	if _, err := store.Load(ctx); err != nil {
		appLogger.Fatal("cannot load overrides", err)
	}
	profileUseCase := profileUC.NewProfileUseCase(store, portfolio.Bundled)

	// HTTP Handlers
	portfolioHandler := httpAdapter.NewPortfolioHandler(profileUseCase, appLogger)
	adminHandler := httpAdapter.NewAdminHandler(store, appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		PortfolioHandler: portfolioHandler,
		AdminHandler:     adminHandler,
		Logger:           appLogger,
		StaticDir:        cfg.App.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", err)
	}
}
