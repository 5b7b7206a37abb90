package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/application"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/response"
	"github.com/scentlog/scentlog/pkg/validation"
)

type DiscussionHandler struct {
	Svc    *application.DiscussionService
	Logger *logrus.Logger
}

func NewDiscussionHandler(svc *application.DiscussionService, logger *logrus.Logger) *DiscussionHandler {
	return &DiscussionHandler{Svc: svc, Logger: logger}
}

type discussionRequest struct {
	Title     string   `json:"title" binding:"required,max=150"`
	Content   string   `json:"content" binding:"required,max=2000"`
	PerfumeID string   `json:"perfume_id" binding:"omitempty,uuid"`
	Tags      []string `json:"tags" binding:"omitempty,max=10"`
}

func (r *discussionRequest) input() application.DiscussionInput {
	return application.DiscussionInput{
		Title:     r.Title,
		Content:   r.Content,
		PerfumeID: r.PerfumeID,
		Tags:      r.Tags,
	}
}

// Create POST /api/discussions (auth)
func (h *DiscussionHandler) Create(c *gin.Context) {
	var req discussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, discussionJSON(d, false), "discussion created", nil)
}

// List GET /api/discussions
func (h *DiscussionHandler) List(c *gin.Context) {
	f := repo.DiscussionFilter{
		Search:    c.Query("search"),
		PerfumeID: c.Query("perfume_id"),
		Sort:      c.Query("sort"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 10),
	}
	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, discussionsJSON(items), "discussions", pageMeta(f.Page, f.Limit, total))
}

// Get GET /api/discussions/:id
func (h *DiscussionHandler) Get(c *gin.Context) {
	d, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, discussionJSON(d, true), "discussion", nil)
}

// Update PUT /api/discussions/:id (auth, owner only)
func (h *DiscussionHandler) Update(c *gin.Context) {
	var req discussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, discussionJSON(d, false), "discussion updated", nil)
}

// Delete DELETE /api/discussions/:id (auth, owner or moderator)
func (h *DiscussionHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), middleware.RoleFromCtx(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "discussion deleted", nil)
}

type replyRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// AddReply POST /api/discussions/:id/replies (auth)
func (h *DiscussionHandler) AddReply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rp, err := h.Svc.AddReply(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, replyJSON(rp), "reply added", nil)
}

// DeleteReply DELETE /api/discussions/:id/replies/:replyID (auth, owner or moderator)
func (h *DiscussionHandler) DeleteReply(c *gin.Context) {
	err := h.Svc.DeleteReply(c.Request.Context(), c.GetString("userID"), middleware.RoleFromCtx(c), c.Param("id"), c.Param("replyID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "reply deleted", nil)
}

// ToggleLike POST /api/discussions/:id/like (auth)
func (h *DiscussionHandler) ToggleLike(c *gin.Context) {
	state, err := h.Svc.ToggleLike(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"liked": state.Liked, "like_count": state.Count}, "like toggled", nil)
}

// ToggleReplyLike POST /api/discussions/:id/replies/:replyID/like (auth)
func (h *DiscussionHandler) ToggleReplyLike(c *gin.Context) {
	state, err := h.Svc.ToggleReplyLike(c.Request.Context(), c.GetString("userID"), c.Param("id"), c.Param("replyID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"liked": state.Liked, "like_count": state.Count}, "like toggled", nil)
}
