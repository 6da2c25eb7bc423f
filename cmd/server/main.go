package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindtrack/internal/cache"
	"mindtrack/internal/classifier"
	"mindtrack/internal/clinical"
	"mindtrack/internal/config"
	"mindtrack/internal/pipeline"
	"mindtrack/internal/repository"
	"mindtrack/internal/service"
	"mindtrack/internal/transport/rest"
	"mindtrack/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load model config and log classifier settings
	modelCfg := config.DefaultModelConfig()
	log.Printf("Model Config:")
	if modelCfg.IsEnabled() {
		log.Printf("  Artifact:  %s", modelCfg.ArtifactPath)
	} else {
		log.Println("  Artifact:  NOT SET (using mock classifier)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Load classifier
	var clf classifier.Model
	if modelCfg.IsEnabled() {
		clf, err = classifier.LoadArtifact(modelCfg.ArtifactPath)
		if err != nil {
			log.Fatal("Failed to load model artifact:", err)
		}
		log.Printf("Loaded classifier %s (%d features, %d classes)",
			clf.Name(), len(clf.FeatureNames()), len(clf.Classes()))
	} else {
		clf = classifier.NewMockModel()
		log.Println("Warning: MODEL_PATH not set, using mock classifier")
	}

	// Load category mappings (defaults when unset)
	var mappings *pipeline.Mappings
	if modelCfg.MappingsPath != "" {
		mappings, err = pipeline.LoadMappings(modelCfg.MappingsPath)
		if err != nil {
			log.Fatal("Failed to load category mappings:", err)
		}
		log.Printf("Loaded category mappings from %s", modelCfg.MappingsPath)
	}
	encoder := pipeline.NewEncoder(mappings)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	assessmentRepo := repository.NewAssessmentRepo(db)

	// Initialize caches
	resultCache := cache.NewResultCache(rdb)
	rateLimiter := cache.NewRateLimitCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	clinicalEngine := clinical.NewEngine()
	predictSvc := service.NewPredictionService(clf, encoder, clinicalEngine, assessmentRepo, resultCache)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, resultCache)
	reportSvc := service.NewReportService(assessmentRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	predictSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		PredictionService: predictSvc,
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		RateLimiter:       rateLimiter,
		PredictRateLimit:  cfg.RateLimit,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/predict")
		log.Println("  POST /v1/assessments")
		log.Println("  GET  /v1/assessments/{patientNumber}")
		log.Println("  GET  /v1/assessments/{patientNumber}/latest")
		log.Println("  GET  /v1/reports/{patientNumber}/pdf")
		log.Println("  WS   /v1/ws/alerts")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
