package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artist-portfolio/internal/remote"
)

// RequireOperator re-checks the role against the store on every request, so
// a demoted operator loses access before their session runs out.
func RequireOperator(roles remote.Roles, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ok, err := roles.HasRole(c.Request.Context(), userID, role)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Could not verify role"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Next()
	}
}
