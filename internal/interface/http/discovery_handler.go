package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/pkg/response"
)

// DiscoveryHandler covers the ranking and recommendation queries.
type DiscoveryHandler struct {
	Recs     *application.RecommendationService
	Trending *application.TrendingService
	Logger   *logrus.Logger
}

func NewDiscoveryHandler(recs *application.RecommendationService, trending *application.TrendingService, logger *logrus.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{Recs: recs, Trending: trending, Logger: logger}
}

// Similar GET /api/perfumes/:id/similar
func (h *DiscoveryHandler) Similar(c *gin.Context) {
	items, err := h.Recs.SimilarTo(c.Request.Context(), c.Param("id"), intQuery(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "similar perfumes", nil)
}

// AlsoLiked GET /api/perfumes/:id/also-liked
func (h *DiscoveryHandler) AlsoLiked(c *gin.Context) {
	items, err := h.Recs.AlsoLikedBy(c.Request.Context(), c.Param("id"), intQuery(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, alsoLikedJSON(items), "also liked", nil)
}

// Recommendations GET /api/recommendations (auth)
func (h *DiscoveryHandler) Recommendations(c *gin.Context) {
	recs, err := h.Recs.RecommendFor(c.Request.Context(), c.GetString("userID"), intQuery(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(recs.Perfumes), "recommendations", gin.H{"source": recs.Source})
}

// TrendingList GET /api/trending?window=week|month|year
func (h *DiscoveryHandler) TrendingList(c *gin.Context) {
	items, err := h.Trending.Trending(c.Request.Context(), c.Query("window"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, trendingJSON(items), "trending", nil)
}

// TopRated GET /api/top-rated?limit=&min_reviews=
func (h *DiscoveryHandler) TopRated(c *gin.Context) {
	items, err := h.Trending.TopRated(c.Request.Context(), intQuery(c, "limit", 0), intQuery(c, "min_reviews", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "top rated", nil)
}
