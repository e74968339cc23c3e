// Package main is the entry point for the CivicPulse API binary.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/civicpulse/civicpulse/internal/classifier"
	"github.com/civicpulse/civicpulse/internal/config"
	"github.com/civicpulse/civicpulse/internal/database"
	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/intake"
	"github.com/civicpulse/civicpulse/internal/processing"
	"github.com/civicpulse/civicpulse/internal/query"
	"github.com/civicpulse/civicpulse/internal/queue"
	"github.com/civicpulse/civicpulse/internal/repository"
	"github.com/civicpulse/civicpulse/internal/server"
	"github.com/civicpulse/civicpulse/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	complaints, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer cleanup()

	images, uploadsDir, err := buildImageStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init image store: %v", err)
	}

	var cls classifier.Classifier
	if cfg.OpenAIAPIKey != "" {
		cls, err = classifier.NewOpenAI(classifier.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.VisionModel,
			Timeout: cfg.ClassifyTimeout,
		})
		if err != nil {
			log.Fatalf("init classifier: %v", err)
		}
	} else {
		log.Printf("OPENAI_API_KEY not set, image analysis disabled")
	}

	enricher, enricherCleanup := buildEnricher(ctx, cfg, complaints, images, cls)
	defer enricherCleanup()

	srv := server.New(cfg, intake.New(complaints, images, enricher), query.New(complaints), cls, uploadsDir)
	if err := srv.Run(ctx); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}

// buildStore picks the Postgres repository when DATABASE_URL is set and the
// flat JSON file otherwise.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		st, err := store.NewJSONStore(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repository.NewComplaintRepository(pool), pool.Close, nil
}

// buildImageStore picks MinIO when S3_ENDPOINT is set and the local uploads
// directory otherwise. The returned dir is empty for the object-storage
// backend, which disables the /uploads/ static route.
func buildImageStore(ctx context.Context, cfg *config.Config) (imagestore.ImageStore, string, error) {
	if cfg.S3Endpoint == "" {
		disk, err := imagestore.NewDiskStore(cfg.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return disk, disk.Dir(), nil
	}
	s3, err := imagestore.NewS3Store(imagestore.S3Options{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, "", err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, "", err
	}
	return s3, "", nil
}

// buildEnricher returns nil when classification is impossible, the asynq
// enqueuer when Redis is configured, and the in-process pool otherwise.
func buildEnricher(ctx context.Context, cfg *config.Config, complaints store.Store, images imagestore.ImageStore, cls classifier.Classifier) (intake.Enricher, func()) {
	if cls == nil {
		return nil, func() {}
	}
	if cfg.RedisAddr != "" {
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return queue.NewEnqueuer(client), func() { _ = client.Close() }
	}
	pool := processing.New(complaints, images, cls, cfg.ProcessingPool)
	pool.Start(ctx)
	return pool, func() {}
}
