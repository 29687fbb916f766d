package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ownessay/ownessay-backend/internal/handlers"
	"github.com/ownessay/ownessay-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RecordHandler   *handlers.RecordHandler
	ProgressHandler *handlers.ProgressHandler
	StreakHandler   *handlers.StreakHandler
	EssayHandler    *handlers.EssayHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/auth/register", cfg.AuthHandler.Register)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)
	router.POST("/api/auth/logout", cfg.AuthHandler.Logout)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.GET("/auth/me", cfg.AuthHandler.GetProfile)
	api.PATCH("/auth/me", cfg.AuthHandler.UpdateProfile)

	api.PUT("/records/:date/:slotType", cfg.RecordHandler.SaveRecord)
	api.GET("/records/week", cfg.RecordHandler.GetWeeklyRecords)
	api.GET("/records/:date", cfg.RecordHandler.GetDailyRecords)
	api.DELETE("/records/:id", cfg.RecordHandler.DeleteRecord)

	api.GET("/progress", cfg.ProgressHandler.GetAllWeekProgress)
	api.GET("/progress/week", cfg.ProgressHandler.GetWeekProgress)
	api.GET("/progress/current", cfg.ProgressHandler.GetCurrentWeekProgress)
	api.POST("/progress/week/essay-generated", cfg.ProgressHandler.MarkEssayGenerated)

	api.GET("/streaks", cfg.StreakHandler.GetStreaks)
	api.GET("/streaks/current", cfg.StreakHandler.GetCurrentStreak)
	api.GET("/streaks/max", cfg.StreakHandler.GetMaxStreak)

	api.POST("/essays", cfg.EssayHandler.Create)
	api.GET("/essays", cfg.EssayHandler.ListMine)
	api.GET("/essays/likes", cfg.EssayHandler.ListMyLikes)
	api.GET("/essays/bookmarks", cfg.EssayHandler.ListMyBookmarks)
	api.GET("/essays/:id", cfg.EssayHandler.Get)
	api.PATCH("/essays/:id", cfg.EssayHandler.Update)
	api.POST("/essays/:id/publish", cfg.EssayHandler.Publish)
	api.DELETE("/essays/:id", cfg.EssayHandler.Delete)
	api.POST("/essays/:id/likes", cfg.EssayHandler.AddLike)
	api.DELETE("/essays/:id/likes", cfg.EssayHandler.RemoveLike)
	api.POST("/essays/:id/bookmarks", cfg.EssayHandler.AddBookmark)
	api.DELETE("/essays/:id/bookmarks", cfg.EssayHandler.RemoveBookmark)

	return router
}
