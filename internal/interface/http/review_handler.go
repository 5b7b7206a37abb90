package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/response"
	"github.com/scentlog/scentlog/pkg/validation"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

type reviewRequest struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Longevity  int    `json:"longevity" binding:"omitempty,min=1,max=5"`
	Projection int    `json:"projection" binding:"omitempty,min=1,max=5"`
	Sillage    int    `json:"sillage" binding:"omitempty,min=1,max=5"`
	Comment    string `json:"comment" binding:"omitempty,max=1000"`
}

func (r *reviewRequest) input() application.ReviewInput {
	return application.ReviewInput{
		Rating:     r.Rating,
		Longevity:  r.Longevity,
		Projection: r.Projection,
		Sillage:    r.Sillage,
		Comment:    r.Comment,
	}
}

// Create POST /api/perfumes/:id/reviews (auth)
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, reviewJSON(rv), "review created", nil)
}

// ListByPerfume GET /api/perfumes/:id/reviews
func (h *ReviewHandler) ListByPerfume(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	items, total, err := h.Svc.ListByPerfume(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviewsJSON(items), "reviews", pageMeta(page, limit, total))
}

// Update PUT /api/reviews/:id (auth, owner only)
func (h *ReviewHandler) Update(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviewJSON(rv), "review updated", nil)
}

// Delete DELETE /api/reviews/:id (auth, owner or moderator)
func (h *ReviewHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), middleware.RoleFromCtx(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "review deleted", nil)
}
