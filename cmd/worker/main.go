package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/adapters/media_storage"
	profileUC "github.com/tumai/space-api/internal/application/usecase/profile"
	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env, zap.String("service", cfg.App.Name+"-worker"))
	defer appLogger.Sync()
	appLogger.Info("Starting space-api worker...")

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Worker Use Case
	cleanupUseCase := profileUC.NewCleanupPictureUseCase(uploader, appLogger)

	// Kafka Consumer
	consumer, err := event.NewKafkaConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka consumer", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx, cleanupUseCase.Execute); err != nil {
		appLogger.Error("Worker stopped with error", err)
		return
	}
	appLogger.Info("Worker stopped")
}
