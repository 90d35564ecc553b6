package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type OrderRoutes struct {
	handler   *handlers.OrderHandler
	jwtSecret string
}

func NewOrderRoutes(handler *handlers.OrderHandler, jwtSecret string) *OrderRoutes {
	return &OrderRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up merchandise order routes
func (or *OrderRoutes) RegisterRoutes(router *gin.Engine) {
	orderGroup := router.Group("/api/orders")
	orderGroup.Use(middleware.NewAuthMiddleware(or.jwtSecret))
	{
		orderGroup.POST("", or.handler.CreateOrder)
		orderGroup.GET("", or.handler.ListOrders)
		orderGroup.GET("/my-orders", or.handler.MyOrders)
		orderGroup.GET("/stats/summary", or.handler.GetStats)
		orderGroup.GET("/:id", or.handler.GetOrder)
		orderGroup.PUT("/:id/confirm", or.handler.ConfirmOrder)
		orderGroup.PUT("/:id/decline", or.handler.DeclineOrder)
		orderGroup.DELETE("/:id", or.handler.DeleteOrder)
	}
}
