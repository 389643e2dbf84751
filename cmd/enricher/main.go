package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ecstasyholdings/meeting-brain/internal/adapter/repository"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/database"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/search"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/storage"
	"github.com/ecstasyholdings/meeting-brain/internal/usecase/enrichment"
	pkgai "github.com/ecstasyholdings/meeting-brain/pkg/ai"
	"github.com/ecstasyholdings/meeting-brain/pkg/config"
	"github.com/ecstasyholdings/meeting-brain/pkg/jobcontext"
)

// The enricher subscribes to transcript-object notifications and runs the
// asynchronous enrichment phase for each object that lands. Re-writing an
// object re-triggers its meeting's enrichment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("📦 Connecting to object storage...")
	store, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🔍 Connecting to search index...")
	index, err := search.NewIndex(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize search index: %v", err)
	}
	defer index.Close()

	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	svc := enrichment.NewService(
		repository.NewMeetingRecordRepository(db),
		repository.NewManifestRepository(db),
		repository.NewUserRepository(db),
		repository.NewEnrichmentRepository(db),
		store,
		groqClient,
		groqClient,
		index,
		logger,
	)

	log.Println("👂 Listening for transcript objects...")
	events := store.ListenTranscripts(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("✅ Enricher stopped gracefully")
			return
		case event, ok := <-events:
			if !ok {
				log.Println("🛑 Notification stream closed, exiting")
				return
			}
			runEnrichment(ctx, svc, event.ObjectName, logger)
		}
	}
}

// runEnrichment executes one enrichment job with retry and panic recovery.
// A failed job is logged and dropped; the operator re-triggers it by
// re-writing the transcript object.
func runEnrichment(parent context.Context, svc enrichment.Service, objectName string, logger *zap.Logger) {
	jobCtx, cancel := jobcontext.JobBegin(parent, objectName, "enrichment")
	defer cancel()

	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		return svc.EnrichTranscript(ctx, objectName)
	})
	if err != nil {
		logger.Error("enrichment job failed",
			zap.String("object", objectName),
			zap.Error(err))
		return
	}
	logger.Info("enrichment job completed", zap.String("object", objectName))
}
