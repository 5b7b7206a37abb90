package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/pkg/response"
	"github.com/scentlog/scentlog/pkg/validation"
)

// UserHandler covers the signed-in user's own surface: profile, avatar,
// favorites and review history. All routes run behind Auth.
type UserHandler struct {
	Svc     *application.UserService
	Reviews *application.ReviewService
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, reviews *application.ReviewService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Reviews: reviews, Logger: logger}
}

func profileJSON(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"avatar_url":  u.AvatarURL,
		"role":        u.Role,
		"is_verified": u.IsVerified,
		"favorites":   u.Favorites,
		"created_at":  u.CreatedAt,
	}
}

// GetProfile GET /api/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "profile", nil)
}

type updateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

// UpdateProfile PUT /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "profile updated", nil)
}

// UploadAvatar POST /api/users/me/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// ToggleFavorite POST /api/users/me/favorites/:perfumeID
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	liked, err := h.Svc.ToggleFavorite(c.Request.Context(), c.GetString("userID"), c.Param("perfumeID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorite": liked}, "favorite toggled", nil)
}

// ListFavorites GET /api/users/me/favorites
func (h *UserHandler) ListFavorites(c *gin.Context) {
	items, err := h.Svc.ListFavorites(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "favorites", nil)
}

// ListMyReviews GET /api/users/me/reviews
func (h *UserHandler) ListMyReviews(c *gin.Context) {
	items, err := h.Reviews.ListByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviewsJSON(items), "reviews", nil)
}
