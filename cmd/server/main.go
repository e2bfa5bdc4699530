package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user_portal/internal/config"
	"user_portal/internal/middleware"
	"user_portal/internal/repository"
	"user_portal/internal/router"
	"user_portal/internal/service"
	"user_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(appCfg.LogLevel)
	if envErr != nil {
		logger.Debug("No .env file found, relying on environment variables")
	}
	if appCfg.SessionMode == utils.SessionModePlain {
		logger.Warn("SESSION_MODE=plain: the session cookie is the bare username and can be forged by any client")
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Fatalf("Failed to load DB config: %v", err)
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		logger.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	hasher := utils.NewPasswordHasher(appCfg.BcryptCost)
	sessions, err := utils.NewSessionCodec(appCfg.SessionMode, appCfg.SessionSecret, appCfg.SessionTTLHours)
	if err != nil {
		logger.Fatalf("Failed to set up sessions: %v", err)
	}

	// --- Initialize Repositories and Services ---
	userRepo := repository.NewUserRepository(dbPool)
	authService := service.NewAuthService(userRepo, hasher, sessions, logger)
	userService := service.NewUserService(userRepo, hasher, logger)

	// --- Admin bootstrap ---
	if err := authService.EnsureAdmin(ctx, appCfg.AdminUsername, appCfg.AdminPassword); err != nil {
		logger.Fatalf("Failed to create admin user: %v", err)
	}

	// --- Setup Gin Router ---
	engine, err := router.New(router.Deps{
		AuthService: authService,
		UserService: userService,
		Logger:      logger,
		Pool:        middleware.PoolAcquirer(dbPool),
		DB:          dbPool,
	})
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + appCfg.ServerPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", appCfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exiting")
}
