package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
)

// RequireAdmin 拦截非管理员请求，须置于 AuthMiddleware 之后。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		role, ok := value.(string)
		if !ok || database.Role(role) != database.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}
