package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type MerchandiseRoutes struct {
	handler   *handlers.MerchandiseHandler
	jwtSecret string
}

func NewMerchandiseRoutes(handler *handlers.MerchandiseHandler, jwtSecret string) *MerchandiseRoutes {
	return &MerchandiseRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up merchandise catalog routes. The catalog is
// publicly browsable; changes require staff (checked in the service).
func (mr *MerchandiseRoutes) RegisterRoutes(router *gin.Engine) {
	merchGroup := router.Group("/api/merchandise")
	{
		merchGroup.GET("", mr.handler.ListItems)
		merchGroup.GET("/:id", mr.handler.GetItem)

		protected := merchGroup.Group("")
		protected.Use(middleware.NewAuthMiddleware(mr.jwtSecret))
		{
			protected.POST("", mr.handler.CreateItem)
			protected.PUT("/:id", mr.handler.UpdateItem)
			protected.DELETE("/:id", mr.handler.DeleteItem)
		}
	}
}
