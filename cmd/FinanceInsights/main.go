package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/finsight-dev/FinanceInsights/db"
	"github.com/finsight-dev/FinanceInsights/internal/auth"
	"github.com/finsight-dev/FinanceInsights/internal/insights/application"
	"github.com/finsight-dev/FinanceInsights/internal/insights/infrastructure"
	"github.com/finsight-dev/FinanceInsights/internal/insights/interfaces"
	"github.com/finsight-dev/FinanceInsights/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router          *http.ServeMux
	authHandler     *auth.Handler
	userHandler     *user.Handler
	authService     auth.Service
	insightHandler  *interfaces.InsightHandler
	categoryHandler *interfaces.CategoryHandler
}

func NewServer(authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, insightHandler *interfaces.InsightHandler, categoryHandler *interfaces.CategoryHandler) *Server {
	return &Server{
		authHandler:     authHandler,
		userHandler:     userHandler,
		authService:     authService,
		insightHandler:  insightHandler,
		categoryHandler: categoryHandler,
		router:          http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("GOOGLE_AI_API_KEY") == "" {
		log.Println("GOOGLE_AI_API_KEY is not set, AI insights will use local fallbacks")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/categories",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.categoryHandler.HandleGetCategories)))

	// AI INSIGHTS API
	protectedRoutes.Handle("POST /api/protected/ai/categorize",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleCategorize)))

	protectedRoutes.Handle("POST /api/protected/ai/analyze",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleAnalyzeSpending)))

	protectedRoutes.Handle("POST /api/protected/ai/predict-budget",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandlePredictBudget)))

	protectedRoutes.Handle("GET /api/protected/ai/health-score",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleHealthScore)))

	protectedRoutes.Handle("POST /api/protected/ai/chat",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleChat)))

	protectedRoutes.Handle("GET /api/protected/ai/anomalies",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleAnomalies)))

	protectedRoutes.Handle("GET /api/protected/ai/recommendations",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.insightHandler.HandleRecommendations)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	geminiClient := infrastructure.NewGeminiClient(os.Getenv("GOOGLE_AI_API_KEY"))

	var insightCache application.InsightCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err := infrastructure.NewRedisInsightCache(redisURL)
		if err != nil {
			log.Fatalf("Could not initialize insight cache: %v", err)
		}
		defer redisCache.Close()
		insightCache = redisCache
	} else {
		log.Println("REDIS_URL is not set, insight caching is disabled")
	}

	userRepo := user.NewUserRepository(dbService.DB)
	jwtManager := auth.NewJWTManager()

	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)

	insightService := application.NewInsightService(transactionRepo, categoryRepo, geminiClient, insightCache)
	categoryService := application.NewCategoryService(categoryRepo)

	insightHandler := interfaces.NewInsightHandler(insightService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	server := NewServer(authHandler, authService, userHandler, insightHandler, categoryHandler)
	server.RegisterRoutes()

	if err := StartAnomalySweepScheduler(insightService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	loggedRouter := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", loggedRouter); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func StartAnomalySweepScheduler(insightService *application.InsightService) error {
	c := cron.New()
	// Schedule the job to run every 24 hours --> 0 5 0 * * *
	_, err := c.AddFunc("@every 24h", func() {
		if err := insightService.AnomalySweep(context.Background()); err != nil {
			log.Printf("Error running anomaly sweep: %v", err)
		} else {
			log.Println("Anomaly sweep completed successfully.")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
