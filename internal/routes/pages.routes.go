package routes

import (
	"jelly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPageRoutes(r *gin.Engine, pages *controllers.PagesController, settings *controllers.SettingsController) {
	r.GET("/", pages.Index)
	r.GET("/dashboard", pages.Dashboard)
	r.GET("/settings", settings.ShowSettings)
	r.POST("/settings", settings.SaveSettings)
}
