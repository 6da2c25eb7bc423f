package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindtrack/internal/cache"
	"mindtrack/internal/service"
	"mindtrack/internal/transport/rest/handler"
	"mindtrack/internal/transport/rest/middleware"
	"mindtrack/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	PredictionService *service.PredictionService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	RateLimiter       cache.RateLimitCache
	PredictRateLimit  int
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	predictHandler := handler.NewPredictHandler(c.PredictionService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/alerts", wsHandler.AlertsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Clinician routes (require clinician auth)
	clinicianRoutes := v1.NewRoute().Subrouter()
	clinicianRoutes.Use(middleware.Auth(c.AuthService))

	clinicianRoutes.HandleFunc("/assessments", assessmentHandler.Save).Methods("POST", "OPTIONS")
	clinicianRoutes.HandleFunc("/assessments/{patientNumber}", assessmentHandler.GetByPatient).Methods("GET", "OPTIONS")
	clinicianRoutes.HandleFunc("/assessments/{patientNumber}/latest", assessmentHandler.GetLatest).Methods("GET", "OPTIONS")
	clinicianRoutes.HandleFunc("/reports/{patientNumber}/pdf", reportHandler.PatientPDF).Methods("GET", "OPTIONS")

	// Prediction route (clinician auth + rate limit)
	predictRoutes := clinicianRoutes.NewRoute().Subrouter()
	predictRoutes.Use(middleware.RateLimit(c.RateLimiter, c.PredictRateLimit))

	predictRoutes.HandleFunc("/predict", predictHandler.Predict).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
