package routes

import (
	"driver_dispatch/internal/controllers"
	"driver_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CollectionRoutes(r *gin.Engine) {
	collections := r.Group("/api/collections")
	collections.Use(middleware.RequireAuth())
	{
		collections.GET("/driver/:driverId", controllers.ListCollectionsForDriver)
		collections.PATCH("/:id/collect", controllers.CollectCashCollection)
	}
}
