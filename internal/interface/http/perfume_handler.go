package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
	"github.com/scentlog/scentlog/internal/interface/middleware"
	"github.com/scentlog/scentlog/pkg/response"
	"github.com/scentlog/scentlog/pkg/validation"
)

// PerfumeHandler covers the catalog surface: public browsing and the
// admin-only writes.
type PerfumeHandler struct {
	Svc    *application.PerfumeService
	Logger *logrus.Logger
}

func NewPerfumeHandler(svc *application.PerfumeService, logger *logrus.Logger) *PerfumeHandler {
	return &PerfumeHandler{Svc: svc, Logger: logger}
}

type perfumeRequest struct {
	Name        string   `json:"name" binding:"required,max=150"`
	Brand       string   `json:"brand" binding:"required,max=100"`
	Designer    string   `json:"designer" binding:"omitempty,max=100"`
	Country     string   `json:"country" binding:"omitempty,max=100"`
	Category    string   `json:"category" binding:"required,oneof=Men Women Unisex"`
	ReleaseYear *int     `json:"release_year" binding:"omitempty,gte=1700,lte=2100"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description string   `json:"description" binding:"omitempty,max=5000"`
	NotesTop    []string `json:"notes_top"`
	NotesMiddle []string `json:"notes_middle"`
	NotesBase   []string `json:"notes_base"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	BuyLink     string   `json:"buy_link" binding:"omitempty,url"`
}

func (r *perfumeRequest) input() application.PerfumeInput {
	return application.PerfumeInput{
		Name:        r.Name,
		Brand:       r.Brand,
		Designer:    r.Designer,
		Country:     r.Country,
		Category:    entity.Category(r.Category),
		ReleaseYear: r.ReleaseYear,
		Price:       r.Price,
		Description: r.Description,
		NotesTop:    r.NotesTop,
		NotesMiddle: r.NotesMiddle,
		NotesBase:   r.NotesBase,
		ImageURL:    r.ImageURL,
		BuyLink:     r.BuyLink,
	}
}

// Create POST /api/perfumes (admin)
func (h *PerfumeHandler) Create(c *gin.Context) {
	var req perfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), middleware.RoleFromCtx(c), c.GetString("userID"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, perfumeJSON(p), "perfume created", nil)
}

// Update PUT /api/perfumes/:id (admin)
func (h *PerfumeHandler) Update(c *gin.Context) {
	var req perfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.RoleFromCtx(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumeJSON(p), "perfume updated", nil)
}

// Delete DELETE /api/perfumes/:id (admin)
func (h *PerfumeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.RoleFromCtx(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "perfume deleted", nil)
}

// Get GET /api/perfumes/:id
func (h *PerfumeHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumeJSON(p), "perfume", nil)
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func filterFromQuery(c *gin.Context) repo.PerfumeFilter {
	f := repo.PerfumeFilter{
		Search:   c.Query("search"),
		Brand:    c.Query("brand"),
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Sort:     c.Query("sort"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	}
	if v, err := strconv.Atoi(c.Query("release_year")); err == nil {
		f.ReleaseYear = &v
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("min_rating"), 64); err == nil {
		f.MinRating = &v
	}
	if notes := c.Query("notes"); notes != "" {
		f.Notes = strings.Split(notes, ",")
	}
	return f
}

// List GET /api/perfumes
func (h *PerfumeHandler) List(c *gin.Context) {
	f := filterFromQuery(c)
	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "perfumes", pageMeta(f.Page, f.Limit, total))
}

// Search GET /api/perfumes/search?q=
func (h *PerfumeHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.ErrorJSON(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	items, err := h.Svc.Search(c.Request.Context(), q, intQuery(c, "limit", 10))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "search results", nil)
}

// Compare GET /api/perfumes/compare?ids=a,b,c
func (h *PerfumeHandler) Compare(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	items, err := h.Svc.Compare(c.Request.Context(), ids)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, perfumesJSON(items), "comparison", nil)
}

// Meta GET /api/perfumes/meta
func (h *PerfumeHandler) Meta(c *gin.Context) {
	meta, err := h.Svc.Meta(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"brands":     meta.Brands,
		"notes":      meta.Notes,
		"categories": meta.Categories,
	}, "catalog meta", nil)
}

// BuyClick POST /api/perfumes/:id/buy-click
func (h *PerfumeHandler) BuyClick(c *gin.Context) {
	link, err := h.Svc.RecordBuyClick(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"buy_link": link}, "buy click recorded", nil)
}

// UploadImage POST /api/perfumes/:id/image (admin, multipart field "file")
func (h *PerfumeHandler) UploadImage(c *gin.Context) {
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

	p, err := h.Svc.UploadImage(c.Request.Context(), middleware.RoleFromCtx(c), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": p.ImageURL}, "image uploaded", nil)
}
