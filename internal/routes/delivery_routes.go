package routes

import (
	"driver_dispatch/internal/controllers"

	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(r *gin.Engine) {
	deliveries := r.Group("/api/deliveries")
	{
		deliveries.GET("", controllers.ListDeliveries)
		deliveries.GET("/current/:driverId", controllers.GetCurrentDelivery)
		deliveries.GET("/history/:driverId", controllers.GetDeliveryHistory)
		deliveries.GET("/:id", controllers.GetDelivery)
		deliveries.POST("", controllers.CreateDelivery)
		deliveries.PATCH("/:id/status", controllers.UpdateDeliveryStatus)
		deliveries.POST("/:id/confirm", controllers.ConfirmDelivery)
	}
}
