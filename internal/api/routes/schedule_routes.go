package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type ScheduleRoutes struct {
	handler   *handlers.ScheduleHandler
	jwtSecret string
}

func NewScheduleRoutes(handler *handlers.ScheduleHandler, jwtSecret string) *ScheduleRoutes {
	return &ScheduleRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up practice schedule routes
func (sr *ScheduleRoutes) RegisterRoutes(router *gin.Engine) {
	scheduleGroup := router.Group("/api/schedules")
	{
		scheduleGroup.GET("", sr.handler.ListSchedules)
		scheduleGroup.GET("/:id", sr.handler.GetSchedule)

		protected := scheduleGroup.Group("")
		protected.Use(middleware.NewAuthMiddleware(sr.jwtSecret))
		{
			protected.POST("", sr.handler.CreateSchedule)
			protected.PUT("/:id", sr.handler.UpdateSchedule)
			protected.DELETE("/:id", sr.handler.DeleteSchedule)
		}
	}
}
