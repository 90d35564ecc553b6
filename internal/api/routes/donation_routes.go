package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
)

type DonationRoutes struct {
	handler   *handlers.DonationHandler
	jwtSecret string
}

func NewDonationRoutes(handler *handlers.DonationHandler, jwtSecret string) *DonationRoutes {
	return &DonationRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes sets up donation routes. Recording a donation is
// open to the public; everything else requires a signed-in member.
func (dr *DonationRoutes) RegisterRoutes(router *gin.Engine) {
	donationGroup := router.Group("/api/donations")
	{
		donationGroup.POST("", dr.handler.CreateDonation)

		protected := donationGroup.Group("")
		protected.Use(middleware.NewAuthMiddleware(dr.jwtSecret))
		{
			protected.GET("", dr.handler.ListDonations)
			protected.GET("/:id", dr.handler.GetDonation)
			protected.PUT("/:id", dr.handler.UpdateDonation)
			protected.PUT("/:id/status", dr.handler.UpdateStatus)
			protected.DELETE("/:id", dr.handler.DeleteDonation)
			protected.GET("/stats/summary", dr.handler.GetStats)
		}
	}
}
