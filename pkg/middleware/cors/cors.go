package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// New returns a CORS middleware that honors a list of allowed origins.
// Entries may carry a single `*` wildcard (e.g. https://*.vercel.app) so
// preview deployments keep working without config churn.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	patterns := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		patterns = append(patterns, strings.TrimRight(origin, "/"))
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll || matches(patterns, origin) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			}
		} else if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func matches(patterns []string, origin string) bool {
	origin = strings.TrimRight(origin, "/")
	for _, pattern := range patterns {
		if !strings.Contains(pattern, "*") {
			if origin == pattern {
				return true
			}
			continue
		}
		parts := strings.SplitN(pattern, "*", 2)
		if strings.HasPrefix(origin, parts[0]) && strings.HasSuffix(origin, parts[1]) {
			return true
		}
	}
	return false
}
