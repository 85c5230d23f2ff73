package main

import (
	"os"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/auth"
	"github.com/brightforge-studio/brightforge/internal/handlers"
	"github.com/brightforge-studio/brightforge/internal/leadcapture"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/router"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.L.Sync()

	if err := godotenv.Load(); err != nil {
		logger.L.Warn("No .env file loaded", zap.Error(err))
	}

	if err := auth.InitJWTSecret(); err != nil {
		logger.L.Fatal("Failed to initialize JWT secret", zap.Error(err))
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logger.L.Fatal("DATABASE_URL is required")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logger.L.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.L.Fatal("Failed to migrate database", zap.Error(err))
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		if err := db.ConnectRedis(addr, os.Getenv("REDIS_PASSWORD")); err != nil {
			logger.L.Fatal("Failed to connect to redis", zap.Error(err))
		}

		handlers.ResetTokens = auth.NewRedisResetTokenStore(db.Redis)
		handlers.LeadCapture = leadcapture.NewCoordinator(leadcapture.NewRedisSessionStore(db.Redis))

		logger.L.Info("Redis connected", zap.String("addr", addr))
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		logger.L.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logger.L.Fatal("Failed to start server", zap.Error(err))
	}
}
