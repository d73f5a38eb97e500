package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/marketvibe/doorrenew-api/internal/infra/database"
	"github.com/marketvibe/doorrenew-api/internal/infra/http/handlers"
	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
	"github.com/marketvibe/doorrenew-api/internal/infra/mail"
	"github.com/marketvibe/doorrenew-api/internal/infra/ratelimit"
	"github.com/marketvibe/doorrenew-api/internal/infra/storage"
	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

const (
	submitRateLimit  = 3
	submitRateWindow = 60 * time.Second
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// 1. Repository
	leadRepo := database.NewLeadRepository(db)

	// 2. Rate limiter: Redis when configured so the window holds across
	// instances, otherwise the in-process fallback.
	var limiter usecase.RateLimiter
	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		limiter = ratelimit.NewRedisLimiter(redisClient, submitRateLimit, submitRateWindow)
	} else {
		log.Println("REDIS_URL not set, using in-memory rate limiter (per-instance)")
		limiter = ratelimit.NewMemoryLimiter(submitRateLimit, submitRateWindow)
	}

	// 3. Outbound adapters
	tracker := meta.NewClient(
		os.Getenv("META_PIXEL_ID"),
		os.Getenv("META_ACCESS_TOKEN"),
		os.Getenv("META_TEST_EVENT_CODE"),
	)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	imageStore, err := storage.NewS3Store(
		context.Background(),
		os.Getenv("S3_REGION"),
		os.Getenv("S3_BUCKET"),
		os.Getenv("S3_PUBLIC_URL"),
	)
	if err != nil {
		log.Fatalf("s3 store init failed: %v", err)
	}

	// 4. Use cases
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, limiter, tracker, mailSender)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo, mailSender)
	webhookUC := usecase.NewWebhookLeadUseCase(leadRepo, mailSender)
	uploadUC := usecase.NewUploadImagesUseCase(imageStore)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(submitUC, updateUC)
	uploadHandler := handlers.NewUploadHandler(uploadUC)
	trackHandler := handlers.NewTrackHandler(tracker)
	webhookHandler := handlers.NewWebhookHandler(
		webhookUC,
		os.Getenv("LEADBRIDGE_SECRET_TOKEN"),
		os.Getenv("ZAPIER_SECRET_TOKEN"),
	)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Leadbridge-Token", "X-Zapier-Secret"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/submit-lead", leadHandler.SubmitLead)
		r.Post("/update-lead", leadHandler.UpdateLead)
		r.Post("/upload-images", uploadHandler.UploadImages)
		r.Post("/track-view", trackHandler.TrackView)
		r.Post("/track-event", trackHandler.TrackEvent)

		r.Get("/leadbridge-webhook", webhookHandler.Status)
		r.Post("/leadbridge-webhook", webhookHandler.HandleLeadBridge)
		r.Get("/zapier-webhook", webhookHandler.Status)
		r.Post("/zapier-webhook", webhookHandler.HandleZapier)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("door renew api listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
