package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/search", h.search)
	rg.POST("/jobs", h.save)
	rg.GET("/jobs", h.list)
}

type searchRequest struct {
	Title  string              `json:"title"`
	Skills map[string][]string `json:"skills"`
	Page   int                 `json:"page"`
	Size   int                 `json:"size"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	listings, err := h.Svc.Search(c.Request.Context(), req.Title, req.Skills)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, "internal_error", "job search not configured", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "job search unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search jobs", nil)
		}
		return
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"jobs":  Paginate(listings, page, req.Size),
		"page":  page,
		"pages": PageCount(len(listings), req.Size),
		"total": len(listings),
	})
}

type saveRequest struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirectUrl"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Save(c.Request.Context(), userID, SaveInput{
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		RedirectURL: req.RedirectURL,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save job", nil)
		return
	}

	// 201 is the caller's cue to follow redirectUrl; never send it on failure.
	respond.JSON(c, http.StatusCreated, ToResponse(job))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	all, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	resp := make([]JobResponse, 0, len(all))
	for _, job := range all {
		resp = append(resp, ToResponse(job))
	}
	respond.JSON(c, http.StatusOK, gin.H{"jobs": resp})
}
