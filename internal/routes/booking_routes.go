package routes

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/controllers"
	"rentwheels/internal/middleware"
)

func BookingRoutes(api *gin.RouterGroup, ct *controllers.BookingController) {
	bookings := api.Group("/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.POST("", ct.Create)
		bookings.GET("", ct.List)
		bookings.GET("/:id", ct.Get)
		bookings.PUT("/:id", ct.Update)
	}
}
