package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/customer-pulse/docs"
	pkgvalidator "github.com/johnquangdev/customer-pulse/pkg/validator"

	"github.com/johnquangdev/customer-pulse/internal/adapter/handler"
	"github.com/johnquangdev/customer-pulse/internal/adapter/repository"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/cache"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/database"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/external/recall"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/external/trigger"
	httpmw "github.com/johnquangdev/customer-pulse/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/messaging"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/storage"
	"github.com/johnquangdev/customer-pulse/internal/usecase/entity"
	"github.com/johnquangdev/customer-pulse/internal/usecase/nextstep"
	"github.com/johnquangdev/customer-pulse/internal/usecase/recovery"
	"github.com/johnquangdev/customer-pulse/pkg/config"
	"github.com/johnquangdev/customer-pulse/pkg/jwt"
)

// @title           Customer Pulse API
// @version         1.0
// @description     Transcript recovery, next step extraction and thread entity resolution.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a service JWT.

// dispatcher is what both pipelines hand task commands to
type dispatcher interface {
	Dispatch(ctx context.Context, cmd entities.TaskCommand) (string, error)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger.Info("🔧 Initializing dependencies...")

	// Database
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run migrations on boot only when explicitly enabled.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			logger.Fatal("❌ AutoMigrate is enabled in production. Run cmd/migrate instead.")
		}
		logger.Info("🔄 Applying migrations on startup (development only)")
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("❌ Failed to apply migrations", zap.Error(err))
		}
	}

	// Sweep locks: Redis when configured, in-process otherwise
	var locker recovery.Locker
	if cfg.RedisEnabled() {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("❌ Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient)
	} else {
		logger.Warn("⚠️  REDIS_HOST not set, sweep locks only hold within this process")
		locker = cache.NewMemoryStore()
	}

	// Transcript archive
	var archive recovery.TranscriptArchive
	if cfg.Storage.Enabled {
		logger.Info("🗄️  Initializing transcript archive...", zap.String("bucket", cfg.Storage.BucketName))
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Fatal("❌ Failed to initialize storage", zap.Error(err))
		}
		archive = minioClient
	}

	// Task dispatch
	var tasks dispatcher
	switch strings.ToLower(cfg.Dispatch.Backend) {
	case "nats":
		logger.Info("📨 Dispatching tasks over NATS", zap.String("url", cfg.NATS.URL))
		publisher, err := messaging.NewPublisher(&cfg.NATS, logger)
		if err != nil {
			logger.Fatal("❌ Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		tasks = publisher
	default:
		logger.Info("🚀 Dispatching tasks to the task runner", zap.String("url", cfg.Trigger.BaseURL))
		tasks = trigger.NewClient(&cfg.Trigger, logger)
	}

	// Repositories
	logger.Info("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	nextStepRepo := repository.NewNextStepRepository(db)
	featureRequestRepo := repository.NewFeatureRequestRepository(db)

	// Services
	recallClient := recall.NewClient(&cfg.Recall)
	recoveryService := recovery.NewService(
		meetingRepo,
		recallClient,
		tasks,
		locker,
		archive,
		recovery.Options{
			AnalysisTask: cfg.Sweep.AnalysisTask,
			ItemTimeout:  cfg.Sweep.ItemTimeout,
			LockTTL:      cfg.Sweep.LockTTL,
		},
		logger,
	)
	nextStepService := nextstep.NewService(meetingRepo, threadRepo, directoryRepo, nextStepRepo, featureRequestRepo, nil, logger)
	entityService := entity.NewService(threadRepo, directoryRepo, tasks, cfg.Sweep.ThreadTask, logger)

	// Handlers
	recoveryHandler := handler.NewRecoveryHandler(recoveryService, logger)
	nextStepHandler := handler.NewNextStepHandler(nextStepService, logger)
	entityHandler := handler.NewEntityHandler(entityService, logger)
	webhookHandler := handler.NewRecallWebhookHandler(recoveryService, cfg.Recall.WebhookSecret, logger)
	if cfg.Recall.WebhookSecret == "" {
		logger.Warn("⚠️  RECALL_WEBHOOK_SECRET not set, every webhook will be rejected")
	}

	// Auth
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	if cfg.Server.AuthDisabled {
		logger.Warn("⚠️  Service authentication is DISABLED")
	}
	authMW := httpmw.EchoServiceAuth(jwtManager, cfg.Server.AuthDisabled)

	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, recoveryHandler, nextStepHandler, entityHandler, webhookHandler, authMW)
	router.Setup(e)

	// Periodic sweep
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if cfg.Sweep.Interval > 0 {
		if err := recoveryService.StartScheduler(schedulerCtx, cfg.Sweep.Interval, cfg.Sweep.BatchLimit); err != nil {
			logger.Fatal("❌ Failed to start sweep scheduler", zap.Error(err))
		}
	} else {
		logger.Info("⏸️  Sweep scheduler disabled; sweeps run on demand only")
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	if cfg.Sweep.Interval > 0 {
		if err := recoveryService.StopScheduler(); err != nil {
			logger.Warn("⚠️  Failed to stop sweep scheduler", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}
