package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/container"
	handlers "github.com/scentlog/scentlog/internal/interface/http"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/helpers"
)

// UserModule wires the signed-in user's own routes under /api/users/me.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	me := rg.Group("/users/me")
	me.Use(middleware.Auth(rdb, m.JWT))
	me.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		me.GET("", m.Handler.GetProfile)
		me.PUT("", m.Handler.UpdateProfile)
		me.POST("/avatar", m.Handler.UploadAvatar)
		me.GET("/favorites", m.Handler.ListFavorites)
		me.POST("/favorites/:perfumeID", m.Handler.ToggleFavorite)
		me.GET("/reviews", m.Handler.ListMyReviews)
	}
}
