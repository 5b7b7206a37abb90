package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/container"
	handlers "github.com/scentlog/scentlog/internal/interface/http"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/helpers"
)

// DiscussionModule wires the forum. Reading is public, everything else needs
// a login.
type DiscussionModule struct {
	Handler *handlers.DiscussionHandler
	JWT     *helpers.JWTManager
}

func NewDiscussionModule(h *handlers.DiscussionHandler, jwt *helpers.JWTManager) *DiscussionModule {
	return &DiscussionModule{Handler: h, JWT: jwt}
}

func (m *DiscussionModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	browseLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/discussions", browseLimiter, m.Handler.List)
	rg.GET("/discussions/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/discussions")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/replies", m.Handler.AddReply)
		auth.DELETE("/:id/replies/:replyID", m.Handler.DeleteReply)
		auth.POST("/:id/like", m.Handler.ToggleLike)
		auth.POST("/:id/replies/:replyID/like", m.Handler.ToggleReplyLike)
	}
}
