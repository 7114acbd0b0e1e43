package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"rentwheels/internal/controllers"
)

// Deps are the controllers the router wires up; built once in main with
// their services and storage handle.
type Deps struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Vehicles *controllers.VehicleController
	Bookings *controllers.BookingController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Vehicle Rental System Api is Running",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success":    false,
			"message":    "Route Not Found",
			"path":       c.Request.URL.Path,
			"statusCode": 404,
		})
	})

	api := r.Group("/api/v1")

	AuthRoutes(api, d.Auth)
	VehicleRoutes(api, d.Vehicles)
	UserRoutes(api, d.Users)
	BookingRoutes(api, d.Bookings)

	return r
}
