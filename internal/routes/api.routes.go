package routes

import (
	"jelly/internal/controllers"
	"jelly/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAPIRoutes(r *gin.Engine, stats *controllers.StatsController, settings *controllers.SettingsController, limiter *middleware.RateLimiter) {
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		api.GET("/stats", stats.GetStats)
		api.GET("/history", stats.GetHistory)
		api.POST("/net_interface", settings.SetNetInterface)
	}
}
