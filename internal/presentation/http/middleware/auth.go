package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/response"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
)

// AdminAuthMiddleware guards catalog and settings management with the
// admin session token. Billing endpoints stay open: the counter
// terminal never logs in.
func AdminAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAdminToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_role", claims.Role)
		c.Next()
	}
}
