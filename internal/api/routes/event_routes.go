package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type EventRoutes struct {
	handler   *handlers.EventHandler
	jwtSecret string
}

func NewEventRoutes(handler *handlers.EventHandler, jwtSecret string) *EventRoutes {
	return &EventRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up event and registration routes. Browsing is
// public; everything else requires a signed-in member.
func (er *EventRoutes) RegisterRoutes(router *gin.Engine) {
	eventGroup := router.Group("/api/events")
	{
		eventGroup.GET("", er.handler.ListEvents)
		eventGroup.GET("/:id", er.handler.GetEvent)

		protected := eventGroup.Group("")
		protected.Use(middleware.NewAuthMiddleware(er.jwtSecret))
		{
			protected.POST("", er.handler.CreateEvent)
			protected.PUT("/:id", er.handler.UpdateEvent)
			protected.DELETE("/:id", er.handler.DeleteEvent)
			protected.POST("/:id/register", er.handler.Register)
			protected.DELETE("/:id/register", er.handler.Unregister)
			protected.GET("/:id/registrations", er.handler.ListRegistrations)
		}
	}
}
