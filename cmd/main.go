package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ownessay/ownessay-backend/internal/db"
	"github.com/ownessay/ownessay-backend/internal/handlers"
	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/middleware"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/server"
	"github.com/ownessay/ownessay-backend/internal/services"
	"github.com/ownessay/ownessay-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Redis (optional, backs the login throttle)
	var redisClient *redis.Client
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	} else {
		log.Warn("REDIS_ADDR not set, login throttling disabled")
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	recordRepo := repos.NewRecordRepo(thePG, log)
	weekProgressRepo := repos.NewWeekProgressRepo(thePG, log)
	essayRepo := repos.NewEssayRepo(thePG, log)
	likeRepo := repos.NewLikeRepo(thePG, log)
	bookmarkRepo := repos.NewBookmarkRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(thePG, log, userRepo, redisClient, jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	weekProgressService := services.NewWeekProgressService(thePG, log, recordRepo, weekProgressRepo)
	recordService := services.NewRecordService(thePG, log, recordRepo, weekProgressService)
	streakService := services.NewStreakService(thePG, log, recordRepo)
	essayService := services.NewEssayService(thePG, log, essayRepo)
	likeService := services.NewLikeService(thePG, log, likeRepo, essayRepo)
	bookmarkService := services.NewBookmarkService(thePG, log, bookmarkRepo, essayRepo)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	recordHandler := handlers.NewRecordHandler(recordService)
	progressHandler := handlers.NewProgressHandler(weekProgressService)
	streakHandler := handlers.NewStreakHandler(streakService)
	essayHandler := handlers.NewEssayHandler(essayService, likeService, bookmarkService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	var allowOrigins []string
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		allowOrigins = strings.Split(origins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		RecordHandler:   recordHandler,
		ProgressHandler: progressHandler,
		StreakHandler:   streakHandler,
		EssayHandler:    essayHandler,
		AllowOrigins:    allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
