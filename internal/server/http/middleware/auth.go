package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-Api-Key"

// APIKeyRequired guards the agent surface with a static key. An empty
// configured key disables the check, for deployments where the agent sits
// behind the dashboard's own reverse proxy.
func APIKeyRequired(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		presented := extractKey(c)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractKey(c *gin.Context) string {
	if v := c.GetHeader(apiKeyHeader); v != "" {
		return v
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
