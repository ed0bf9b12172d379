package scoring

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

// Handler wires the scoring endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the scoring route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/score", h.score)
}

type scoreHTTPRequest struct {
	FileKey        string `json:"fileKey"`
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) score(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req scoreHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if req.FileKey != "" {
		c.Set("fileKey", req.FileKey)
	}

	// Copy the service so the stage hook stays request-local.
	svc := *h.Svc
	svc.OnStage = func(stage string) {
		c.Set("scoreStage", stage)
	}

	breakdown, err := svc.Score(c.Request.Context(), userID, ScoreInput{
		FileKey:        req.FileKey,
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found for fileKey", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "scoring engine unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, breakdown)
}
