package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/auth"
	"github.com/tripline/vehicle-location-go/pkg/response"
)

// UsernameKey is the context key the authenticated username is stored under
const UsernameKey = "username"

// AuthRequired guards web endpoints with a bearer JWT
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "Invalid credentials")
			c.Abort()
			return
		}

		c.Set(UsernameKey, claims.Subject)
		c.Next()
	}
}
