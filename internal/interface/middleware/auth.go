package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/pkg/helpers"
	"github.com/scentlog/scentlog/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Auth validates the access token cookie and checks the session in Redis is
// still the one the token was minted for. On success the user id and role
// land in the Gin context; the role comes from the session hash so no
// database read happens per request.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(CtxUserID, data["user_id"])
		c.Set(CtxUserRole, data["role"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

// RoleFromCtx returns the authenticated user's role, defaulting to the plain
// user role when the session predates role storage.
func RoleFromCtx(c *gin.Context) entity.Role {
	r := entity.Role(c.GetString(CtxUserRole))
	if !entity.ValidRole(r) {
		return entity.RoleUser
	}
	return r
}
