package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/utils"
)

// JWTMiddleware validates session tokens and enforces a minimum role.
type JWTMiddleware struct{}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

// Handle requires a valid bearer token with at least the given role and puts
// the authenticated identity into the request context. Downstream handlers
// read the caller id from the context; owner ids submitted in request bodies
// are never trusted.
func (m *JWTMiddleware) Handle(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		if !models.Role(claims.Role).AtLeast(required) {
			utils.Error(c, 403, "FORBIDDEN", "Insufficient permissions")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by Handle.
func UserID(c *gin.Context) int {
	return c.GetInt("user_id")
}
