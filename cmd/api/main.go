package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/speakbright/backend/internal/ai"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/config"
	"github.com/speakbright/backend/internal/handlers"
	"github.com/speakbright/backend/internal/logger"
	"github.com/speakbright/backend/internal/middleware"
	"github.com/speakbright/backend/internal/repositories"
	"github.com/speakbright/backend/internal/scoring"
	"github.com/speakbright/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title SpeakBright Practice API
// @version 1.0
// @description API for speech practice scoring, progression, daily quests, and achievements

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting SpeakBright Practice Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT access token validator
	tokenValidator := auth.NewTokenValidator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	gamificationRepo := repositories.NewGamificationRepository(db)
	questRepo := repositories.NewQuestRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	artifactRepo := repositories.NewArtifactRepository(db)

	// Initialize scoring engine and AI judge
	scorer := scoring.NewEngine(cfg.Scoring.FallbackScore)
	judge := ai.NewClient(cfg.AI, logger.Logger)
	clock := services.NewSystemClock()

	// Initialize services
	progressService := services.NewProgressService(progressRepo, sessionRepo)
	questService := services.NewQuestService(questRepo, sessionRepo, progressService, clock, logger.Logger)
	gamificationService := services.NewGamificationService(gamificationRepo, achievementRepo, progressService, clock)
	artifactService := services.NewArtifactService(artifactRepo)
	submissionService := services.NewSubmissionService(
		lessonRepo,
		sessionRepo,
		progressRepo,
		gamificationRepo,
		achievementRepo,
		judge,
		questService,
		artifactService,
		progressService,
		scorer,
		clock,
		logger.Logger,
	)

	// Initialize handlers
	lessonHandler := handlers.NewLessonHandler(submissionService, logger.Logger)
	questHandler := handlers.NewQuestHandler(questService, logger.Logger)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger)
	artifactHandler := handlers.NewArtifactHandler(artifactService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := auth.Middleware(tokenValidator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB, transcripts are text

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		lessonHandler.RegisterRoutes(r, authMiddleware)
		questHandler.RegisterRoutes(r, authMiddleware)
		gamificationHandler.RegisterRoutes(r, authMiddleware)
		progressHandler.RegisterRoutes(r, authMiddleware)
		artifactHandler.RegisterRoutes(r, authMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // submissions wait on the AI judge
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "practice_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
