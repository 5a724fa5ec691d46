package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/utils"
)

// AuthMiddleware reads an optional bearer token. Requests without one pass
// through anonymously; a bad token is rejected outright.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		auth = auth[len(bearer):]

		claim, err := utils.JwtValidate(auth)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := utils.SetOperatorInContext(c.Request.Context(), claim.ID, claim.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireOperator guards write routes: the caller must carry a token with the
// operator role.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetOperatorIdFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		role, _ := utils.GetOperatorRoleFromContext(c.Request.Context())
		if role != utils.RoleOperator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
