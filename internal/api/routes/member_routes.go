package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type MemberRoutes struct {
	handler   *handlers.MemberHandler
	jwtSecret string
}

func NewMemberRoutes(handler *handlers.MemberHandler, jwtSecret string) *MemberRoutes {
	return &MemberRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up the member directory routes
func (mr *MemberRoutes) RegisterRoutes(router *gin.Engine) {
	memberGroup := router.Group("/api/members")
	memberGroup.Use(middleware.NewAuthMiddleware(mr.jwtSecret))
	{
		memberGroup.GET("", mr.handler.ListMembers)
		memberGroup.GET("/:id", mr.handler.GetMember)
		memberGroup.PUT("/:id", mr.handler.UpdateMember)
		memberGroup.PUT("/:id/status", mr.handler.UpdateStatus)
		memberGroup.DELETE("/:id", mr.handler.DeleteMember)
	}
}
