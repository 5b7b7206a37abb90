package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/container"
	"github.com/scentlog/scentlog/internal/domain"
	handlers "github.com/scentlog/scentlog/internal/interface/http"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/helpers"
)

// CatalogModule wires the perfume catalog, its reviews and the discovery
// queries. Browsing is public; reviews need a login; catalog writes need the
// admin role.
type CatalogModule struct {
	Perfumes  *handlers.PerfumeHandler
	Reviews   *handlers.ReviewHandler
	Discovery *handlers.DiscoveryHandler
	JWT       *helpers.JWTManager
	Policy    domain.Policy
}

func NewCatalogModule(p *handlers.PerfumeHandler, r *handlers.ReviewHandler, d *handlers.DiscoveryHandler, jwt *helpers.JWTManager, policy domain.Policy) *CatalogModule {
	return &CatalogModule{Perfumes: p, Reviews: r, Discovery: d, JWT: jwt, Policy: policy}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	browseLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	// Static segments before the :id wildcard.
	pub := rg.Group("/perfumes", browseLimiter)
	{
		pub.GET("", m.Perfumes.List)
		pub.GET("/search", m.Perfumes.Search)
		pub.GET("/compare", m.Perfumes.Compare)
		pub.GET("/meta", m.Perfumes.Meta)
		pub.GET("/:id", m.Perfumes.Get)
		pub.GET("/:id/reviews", m.Reviews.ListByPerfume)
		pub.GET("/:id/similar", m.Discovery.Similar)
		pub.GET("/:id/also-liked", m.Discovery.AlsoLiked)
		pub.POST("/:id/buy-click", m.Perfumes.BuyClick)
	}

	rg.GET("/trending", browseLimiter, m.Discovery.TrendingList)
	rg.GET("/top-rated", browseLimiter, m.Discovery.TopRated)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/perfumes/:id/reviews", m.Reviews.Create)
		auth.PUT("/reviews/:id", m.Reviews.Update)
		auth.DELETE("/reviews/:id", m.Reviews.Delete)
		auth.GET("/recommendations", m.Discovery.Recommendations)
	}

	admin := rg.Group("/perfumes")
	admin.Use(middleware.Auth(rdb, m.JWT))
	admin.Use(middleware.RequireAdmin(m.Policy))
	{
		admin.POST("", m.Perfumes.Create)
		admin.PUT("/:id", m.Perfumes.Update)
		admin.DELETE("/:id", m.Perfumes.Delete)
		admin.POST("/:id/image", m.Perfumes.UploadImage)
	}
}
