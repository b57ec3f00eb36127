package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RevocationChecker reports whether a session token has been revoked
// (admin logout, forced sign-out).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AdminAuth enforces bearer session tokens on the admin API group.
func AdminAuth(signingKey, issuer string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if revoked != nil {
			if gone, err := revoked.IsRevoked(c.Request.Context(), tokenStr); err == nil && gone {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session ended"})
				return
			}
		}
		c.Set("claims", claims)
		c.Set("token", tokenStr)
		c.Next()
	}
}
