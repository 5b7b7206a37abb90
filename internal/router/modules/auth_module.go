package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/container"
	handlers "github.com/scentlog/scentlog/internal/interface/http"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/helpers"
)

// AuthModule wires the account lifecycle routes. The unauthenticated surface
// carries tight per-IP limits because every route here is an abuse target.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	recoveryLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/google", loginLimiter, m.Handler.LoginWithGoogle)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/verify-email", recoveryLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/verify-email/resend", recoveryLimiter, m.Handler.ResendVerification)
	rg.POST("/auth/forgot-password", recoveryLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/reset-password", recoveryLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/change-password", m.Handler.ChangePassword)
	}
}
