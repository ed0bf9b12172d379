package uploads

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
)

const maxUploadBytes = 10 << 20 // 10MB

var allowedContentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var checksumPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Handler serves upload ticket minting and, for the local store, direct PUTs.
type Handler struct {
	Ticketer Ticketer
	Store    object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(ticketer Ticketer, store object.ObjectStore) *Handler {
	return &Handler{Ticketer: ticketer, Store: store}
}

// RegisterRoutes attaches upload routes to the router group. The direct PUT
// route is only useful behind a LocalTicketer but registering it is harmless.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/ticket", h.ticket)
	rg.PUT("/uploads/direct/:key", h.direct)
	rg.POST("/uploads/file", h.file)
}

type ticketRequest struct {
	ContentType string `json:"contentType"`
	ByteSize    int64  `json:"byteSize"`
	Checksum    string `json:"checksum"`
}

type ticketResponse struct {
	URL              string `json:"url"`
	FileKey          string `json:"fileKey"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

func (h *Handler) ticket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.ContentType = strings.TrimSpace(req.ContentType)
	req.Checksum = strings.ToLower(strings.TrimSpace(req.Checksum))

	if _, ok := allowedContentTypes[req.ContentType]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.ByteSize <= 0 || req.ByteSize > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "byteSize must be positive and at most 10MB", nil)
		return
	}
	if !checksumPattern.MatchString(req.Checksum) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "checksum must be a hex-encoded sha256", nil)
		return
	}

	fileKey := NewFileKey(req.Checksum)
	c.Set("fileKey", fileKey)

	ticket, err := h.Ticketer.Mint(c.Request.Context(), fileKey, req.ContentType, req.ByteSize, req.Checksum)
	if err != nil {
		telemetry.Error("uploads.ticket.failed", map[string]any{
			"err":         err.Error(),
			"fileKey":     fileKey,
			"contentType": req.ContentType,
			"byteSize":    req.ByteSize,
			"request_id":  c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to mint upload ticket", nil)
		return
	}

	respond.JSON(c, http.StatusOK, ticketResponse{
		URL:              ticket.URL,
		FileKey:          ticket.FileKey,
		ExpiresInSeconds: ticket.ExpiresInSeconds,
	})
}

func (h *Handler) direct(c *gin.Context) {
	key := c.Param("key")
	c.Set("fileKey", key)

	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid key", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	size, err := h.Store.SaveWithKey(c.Request.Context(), key, c.ContentType(), c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store object", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"fileKey": key, "sizeBytes": size})
}

// file accepts a multipart upload for clients that skip the ticket flow. The
// store namespaces the object under the caller and derives the key itself.
func (h *Handler) file(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	key, size, mimeType, err := h.Store.Save(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}
	c.Set("fileKey", key)

	respond.JSON(c, http.StatusCreated, gin.H{
		"fileKey":   key,
		"sizeBytes": size,
		"mimeType":  mimeType,
	})
}
