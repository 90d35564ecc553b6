package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

var log = logger.NewLogger()

const (
	bearerSchema = "Bearer "
	callerKey    = "caller"
)

// NewAuthMiddleware validates the bearer token and stores the caller
// identity in the request context
func NewAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		tokenString := authHeader[len(bearerSchema):]
		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", zap.Error(err))
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		role := member.Role(claims.Role)
		if !role.IsValid() {
			log.Warn("Token carries unknown role", zap.String("role", claims.Role))
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(callerKey, member.Caller{ID: claims.MemberID, Role: role})
		c.Set("student_id", claims.StudentID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}

// GetCaller extracts the authenticated caller set by the auth middleware
func GetCaller(c *gin.Context) (member.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return member.Caller{}, false
	}
	caller, ok := value.(member.Caller)
	return caller, ok
}
