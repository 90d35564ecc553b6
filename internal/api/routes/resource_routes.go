package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type ResourceRoutes struct {
	handler   *handlers.ResourceHandler
	jwtSecret string
}

func NewResourceRoutes(handler *handlers.ResourceHandler, jwtSecret string) *ResourceRoutes {
	return &ResourceRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up the song library, request review and
// favorites routes. The whole library is members-only.
func (rr *ResourceRoutes) RegisterRoutes(router *gin.Engine) {
	authRequired := middleware.NewAuthMiddleware(rr.jwtSecret)

	resourceGroup := router.Group("/api/resources")
	resourceGroup.Use(authRequired)
	{
		resourceGroup.POST("", rr.handler.CreateResource)
		resourceGroup.GET("", rr.handler.ListResources)
		resourceGroup.GET("/by-song", rr.handler.ListBySong)
		resourceGroup.GET("/:id", rr.handler.GetResource)
		resourceGroup.PUT("/:id", rr.handler.UpdateResource)
		resourceGroup.DELETE("/:id", rr.handler.DeleteResource)
	}

	requestGroup := router.Group("/api/resource-requests")
	requestGroup.Use(authRequired)
	{
		requestGroup.POST("", rr.handler.SubmitRequest)
		requestGroup.GET("", rr.handler.ListRequests)
		requestGroup.GET("/my-requests", rr.handler.MyRequests)
		requestGroup.PUT("/:id/approve", rr.handler.ApproveRequest)
		requestGroup.PUT("/:id/reject", rr.handler.RejectRequest)
		requestGroup.DELETE("/:id", rr.handler.DeleteRequest)
	}

	favoriteGroup := router.Group("/api/favorites")
	favoriteGroup.Use(authRequired)
	{
		favoriteGroup.GET("", rr.handler.ListFavorites)
		favoriteGroup.POST("", rr.handler.AddFavorite)
		favoriteGroup.DELETE("/:resourceId", rr.handler.RemoveFavorite)
		favoriteGroup.GET("/check/:resourceId", rr.handler.CheckFavorite)
	}
}
