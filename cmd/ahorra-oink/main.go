package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ahorra-oink/internal/api"
	"ahorra-oink/internal/api/handlers"
	"ahorra-oink/internal/repository"
	"ahorra-oink/internal/service"
	"ahorra-oink/pkg/auth"
	"ahorra-oink/pkg/config"
	"ahorra-oink/pkg/logger"
	"ahorra-oink/pkg/postgres"

	"go.uber.org/zap"
)

// @title Ahorra Oink API
// @version 1.0
// @description API de finanzas personales: transacciones, metas de ahorro y logros
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@ahorra-oink.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
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
	appLogger.Info("Starting Ahorra Oink service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	ledgerRepo := repository.NewLedgerRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	achievementRepo := repository.NewAchievementRepository(db, appLogger)
	settingsRepo := repository.NewSettingsRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	achievementService := service.NewAchievementService(achievementRepo, appLogger)
	authService := service.NewAuthService(userRepo, jwtManager, achievementService, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	ledgerService := service.NewLedgerService(ledgerRepo, categoryService, achievementService, appLogger)
	goalService := service.NewGoalService(goalRepo, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, userRepo, achievementService, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(ledgerService, categoryService, goalService, achievementService, appLogger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, appLogger)
	goalHandler := handlers.NewGoalHandler(goalService, appLogger)
	achievementHandler := handlers.NewAchievementHandler(achievementService, appLogger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, appLogger)

	// Setup router
	app := api.SetupRouter(
		authHandler,
		txHandler,
		categoryHandler,
		goalHandler,
		achievementHandler,
		settingsHandler,
		jwtManager,
		appLogger,
	)

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
