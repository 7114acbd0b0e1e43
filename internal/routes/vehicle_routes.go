package routes

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/controllers"
	"rentwheels/internal/middleware"
	"rentwheels/internal/models"
)

func VehicleRoutes(api *gin.RouterGroup, ct *controllers.VehicleController) {
	// Browsing the fleet needs no account
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", ct.List)
		vehicles.GET("/:id", ct.Get)
	}

	admin := api.Group("/vehicles")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("", ct.Create)
		admin.PUT("/:id", ct.Update)
		admin.DELETE("/:id", ct.Delete)
	}
}
