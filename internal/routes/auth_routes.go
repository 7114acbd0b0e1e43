package routes

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/controllers"
)

func AuthRoutes(api *gin.RouterGroup, ct *controllers.AuthController) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", ct.Signup)
		auth.POST("/signin", ct.Signin)
	}
}
