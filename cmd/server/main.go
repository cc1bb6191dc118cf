package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/api"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/api/handlers"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/repository"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/auth"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/config"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/logger"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/postgres"

	"go.uber.org/zap"
)

// @title Budget Planning API
// @version 1.0
// @description Personal finance backend: bill extraction, monthly goals and AI spending insights.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting budget planning service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	billItemRepo := repository.NewBillItemRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize services
	gemini := service.NewGeminiClient(&cfg.Gemini, appLogger)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	billService := service.NewBillService(billItemRepo, gemini, appLogger)
	transcriptionService := service.NewTranscriptionService(gemini, appLogger)
	insightService := service.NewInsightService(goalRepo, billItemRepo, gemini, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	userHandler := handlers.NewUserHandler(userService, appLogger)
	billHandler := handlers.NewBillHandler(billService, transcriptionService, cfg.Server.MaxUploadMB, appLogger)
	insightHandler := handlers.NewInsightHandler(insightService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, userHandler, billHandler, insightHandler, jwtManager, cfg.Server.MaxUploadMB, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
