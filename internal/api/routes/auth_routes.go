package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

type AuthRoutes struct {
	handler     *handlers.AuthHandler
	jwtSecret   string
	rateLimiter auth.RateLimiter
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string, rateLimiter auth.RateLimiter) *AuthRoutes {
	return &AuthRoutes{
		handler:     handler,
		jwtSecret:   jwtSecret,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes sets up registration, login and profile routes
func (ar *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	{
		// Login and registration get a stricter rate limit window
		public := authGroup.Group("")
		public.Use(middleware.NewRateLimitMiddleware(ar.rateLimiter, "auth"))
		{
			public.POST("/register", ar.handler.Register)
			public.POST("/login", ar.handler.Login)
			public.POST("/verify-email", ar.handler.VerifyEmail)
		}

		protected := authGroup.Group("")
		protected.Use(middleware.NewAuthMiddleware(ar.jwtSecret))
		{
			protected.GET("/profile", ar.handler.Profile)
		}
	}
}
