package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
)

// ContextIdentityKey is the gin context key storing resolved session claims.
const ContextIdentityKey = "actingStaff"

// Identity resolves the acting staff identity from a bearer session token
// when one is present. It never blocks: unauthenticated requests pass
// through and the caller-supplied identity fields remain trusted, which is
// the default configuration of this system.
func Identity(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextIdentityKey, claims)
		c.Next()
	}
}

// ActingStaffID returns the resolved acting staff ID, or "" when no identity
// was resolved.
func ActingStaffID(c *gin.Context) string {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return ""
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return ""
	}
	return claims.StaffID
}
