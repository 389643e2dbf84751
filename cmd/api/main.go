package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ecstasyholdings/meeting-brain/internal/adapter/handler"
	"github.com/ecstasyholdings/meeting-brain/internal/adapter/repository"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/database"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/search"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/storage"
	"github.com/ecstasyholdings/meeting-brain/internal/usecase/pipeline"
	pkgai "github.com/ecstasyholdings/meeting-brain/pkg/ai"
	"github.com/ecstasyholdings/meeting-brain/pkg/config"
	"github.com/ecstasyholdings/meeting-brain/pkg/email"
	pkgvalidator "github.com/ecstasyholdings/meeting-brain/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize object storage
	log.Println("📦 Connecting to object storage...")
	store, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize vector index
	log.Println("🔍 Connecting to search index...")
	index, err := search.NewIndex(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize search index: %v", err)
	}
	defer index.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	recordRepo := repository.NewMeetingRecordRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	manifestRepo := repository.NewManifestRepository(db)
	queueRepo := repository.NewTrainingQueueRepository(db)

	// Initialize external clients
	log.Println("🤖 Initializing AI clients...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	brevoClient := email.NewBrevoClient(&cfg.Email)

	// Initialize pipeline service
	log.Println("🧵 Initializing pipeline service...")
	pipelineService := pipeline.NewService(
		recordRepo,
		ledgerRepo,
		manifestRepo,
		pipeline.NewFetcher(),
		store,
		asmClient,
		groqClient,
		brevoClient,
		logger,
	)

	// Initialize handlers
	webhookHandler := handler.NewWebhook(pipelineService, cfg, logger)
	meetingHandler := handler.NewMeeting(recordRepo, groqClient, index, logger)
	trainingHandler := handler.NewTraining(queueRepo, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, webhookHandler, meetingHandler, trainingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
