package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type AttendanceRoutes struct {
	handler   *handlers.AttendanceHandler
	jwtSecret string
}

func NewAttendanceRoutes(handler *handlers.AttendanceHandler, jwtSecret string) *AttendanceRoutes {
	return &AttendanceRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up attendance marking, query, analytics and
// export routes. All of them require a signed-in member; role checks
// happen in the service layer.
func (ar *AttendanceRoutes) RegisterRoutes(router *gin.Engine) {
	attendanceGroup := router.Group("/api/attendance")
	attendanceGroup.Use(middleware.NewAuthMiddleware(ar.jwtSecret))
	{
		attendanceGroup.POST("/mark", ar.handler.MarkAttendance)
		attendanceGroup.GET("/list", ar.handler.ListAttendance)
		attendanceGroup.GET("/event/:eventId", ar.handler.GetEventAttendance)
		attendanceGroup.GET("/schedule/:scheduleId", ar.handler.GetScheduleAttendance)
		attendanceGroup.GET("/member/:memberId", ar.handler.GetMemberHistory)
		attendanceGroup.GET("/analytics", ar.handler.GetAnalytics)
		attendanceGroup.GET("/export/excel", ar.handler.ExportExcel)
		attendanceGroup.PUT("/:id", ar.handler.UpdateAttendance)
		attendanceGroup.DELETE("/:id", ar.handler.DeleteAttendance)
	}
}
