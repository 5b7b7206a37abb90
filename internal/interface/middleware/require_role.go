package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/pkg/response"
)

// RequireAdmin gates catalog management routes. Runs after Auth.
func RequireAdmin(policy domain.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.CanManageCatalog(RoleFromCtx(c)) {
			resp := response.Error[any](c, http.StatusForbidden, "admin role required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}

// RequireModerator gates moderation routes; admins pass as well. Runs after
// Auth.
func RequireModerator(policy domain.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.CanModerate(RoleFromCtx(c)) {
			resp := response.Error[any](c, http.StatusForbidden, "moderator role required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
