package middleware

import (
	"net/http"

	"turkish_shop_backend/internal/cache"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
)

// RequireAdmin is the admin gate. It resolves the caller's user record and
// requires role == "admin", failing closed when no identity is present. The
// role is read from the store (through the Redis cache), not from the token,
// so a demotion takes effect without waiting for token expiry. This is an
// application-level guard and must be paired with storage-level permissions
// in a real deployment.
func RequireAdmin(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		role := cache.GetCachedRole(c.Request.Context(), userID)
		if role == "" {
			var err error
			role, err = users.GetRole(c.Request.Context(), userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Role lookup failed"})
				c.Abort()
				return
			}
			if role != "" {
				cache.SetCachedRole(c.Request.Context(), userID, role)
			}
		}

		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
