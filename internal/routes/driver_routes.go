package routes

import (
	"driver_dispatch/internal/controllers"
	"driver_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/api/drivers")
	{
		drivers.POST("/register", controllers.RegisterDriver)
		drivers.POST("/login", controllers.LoginDriver)
		drivers.GET("/:id", controllers.GetDriver)
		drivers.PATCH("/:id/status", controllers.SetOnlineStatus)
		drivers.PATCH("/:id/availability", controllers.SetAvailability)
		drivers.PATCH("/:id/rating", controllers.UpdateRating)

		// Profile edits require a session token.
		drivers.PUT("/:id", middleware.RequireAuth(), controllers.UpdateDriver)
	}
}
