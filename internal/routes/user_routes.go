package routes

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/controllers"
	"rentwheels/internal/middleware"
	"rentwheels/internal/models"
)

func UserRoutes(api *gin.RouterGroup, ct *controllers.UserController) {
	users := api.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/:id", ct.Get)
		users.PUT("/:id", ct.Update)
	}

	admin := api.Group("/users")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", ct.List)
		admin.DELETE("/:id", ct.Delete)
	}
}
