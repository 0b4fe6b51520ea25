package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tumai/space-api/adapters/event"
	httpAdapter "github.com/tumai/space-api/adapters/http"
	"github.com/tumai/space-api/adapters/media_storage"
	"github.com/tumai/space-api/adapters/persistence"
	"github.com/tumai/space-api/internal/application/service"
	departmentUC "github.com/tumai/space-api/internal/application/usecase/department"
	membershipUC "github.com/tumai/space-api/internal/application/usecase/membership"
	profileUC "github.com/tumai/space-api/internal/application/usecase/profile"
	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/auth"
	"github.com/tumai/space-api/pkg/logger"
	"github.com/tumai/space-api/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, zap.String("service", cfg.App.Name))
	defer appLogger.Sync()
	appLogger.Info("Start space-api server...")
	logSettings(cfg, appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shut down tracer", err)
			}
		}()
	}

	// Database
	if cfg.DB.MigrateOnStart {
		if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("cannot migrate database", err)
		}
	}
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Optional infrastructure: each piece degrades to disabled when unconfigured.
	var batchLimiter httpAdapter.RateLimiter
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		batchLimiter = persistence.NewRedisRateLimiter(redisClient, cfg.RateLimit.BatchCreatePerMinute, time.Minute)
	}

	var publisher service.ProfileEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	var uploader service.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	}

	// Repositories
	departmentRepo := persistence.NewPostgresDepartmentRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	membershipRepo := persistence.NewPostgresMembershipRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	departmentUseCase := departmentUC.NewDepartmentUseCase(departmentRepo, appLogger)
	membershipUseCase := membershipUC.NewMembershipUseCase(membershipRepo, profileRepo, departmentRepo, appLogger)
	profileUseCases := httpAdapter.ProfileUseCases{
		Create:        profileUC.NewCreateProfileUseCase(profileRepo, publisher, appLogger),
		List:          profileUC.NewListProfilesUseCase(profileRepo, cfg.Paging.MaxPageSize),
		Get:           profileUC.NewGetProfileUseCase(profileRepo, membershipRepo),
		Update:        profileUC.NewUpdateProfileUseCase(profileRepo, publisher, appLogger),
		Delete:        profileUC.NewDeleteProfileUseCase(profileRepo, publisher, appLogger),
		UploadPicture: profileUC.NewUploadPictureUseCase(profileRepo, uploader, publisher, appLogger),
	}

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Departments:  httpAdapter.NewDepartmentHandler(departmentUseCase, membershipUseCase, appLogger),
		Profiles:     httpAdapter.NewProfileHandler(profileUseCases, cfg.Profile.DecodeJobHistory, appLogger),
		Memberships:  httpAdapter.NewMembershipHandler(membershipUseCase, appLogger),
		JWT:          jwtSvc,
		BatchLimiter: batchLimiter,
		AdminRole:    cfg.Auth.AdminRole,
		Logger:       appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           otelhttp.NewHandler(router, cfg.App.Name),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", err)
		return
	}
	appLogger.Info("Server stopped")
}

// startupSettings are the non-secret settings logged at boot.
var startupSettings = []string{
	"port",
	"migrate_on_start",
	"max_page_size",
	"decode_job_history",
	"batch_create_per_minute",
	"auth.admin_role",
	"jaeger.sample_ratio",
}

func logSettings(cfg config.Config, log logger.Logger) {
	fields := make([]zap.Field, 0, len(startupSettings))
	for _, key := range startupSettings {
		value, err := cfg.Lookup(key)
		if err != nil {
			log.Warn("Setting not resolved", zap.String("key", key), zap.Error(err))
			continue
		}
		fields = append(fields, zap.Any(key, value))
	}
	log.Info("Effective settings", fields...)
}
