package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/httperr"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

type UploadHandler struct {
	mediaService  *service.MediaService
	uploadDir     string
	maxUploadSize int64
}

func NewUploadHandler(mediaService *service.MediaService, uploadDir string, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		mediaService:  mediaService,
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSize,
	}
}

// Upload accepts a multipart file plus a purpose and optional skill/listing
// link. Only image, video and audio MIME types are accepted, capped at the
// configured size. Files are stored under a generated unique name.
func (h *UploadHandler) Upload(c *gin.Context) {
	callerID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxUploadSize),
		})
		return
	}

	mediaType, err := service.MediaTypeFromMIME(file.Header.Get("Content-Type"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	purpose := models.MediaPurpose(c.PostForm("purpose"))
	if !models.ValidMediaPurpose(purpose) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media purpose"})
		return
	}

	var skillID, listingID *uuid.UUID
	if v := c.PostForm("skill_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill id"})
			return
		}
		skillID = &id
	}
	if v := c.PostForm("listing_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
			return
		}
		listingID = &id
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		httperr.Respond(c, err)
		return
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Log.Error("Failed to save uploaded file",
			zap.String("owner_id", callerID.String()),
			zap.Error(err),
		)
		httperr.Respond(c, err)
		return
	}

	media, err := h.mediaService.Record(callerID, mediaType, "/uploads/"+filename, purpose, skillID, listingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	logger.Log.Info("File uploaded",
		zap.String("media_id", media.ID.String()),
		zap.String("owner_id", callerID.String()),
		zap.Int64("size", file.Size),
	)

	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// ListByListing is public: listing media supports the browsable marketplace.
func (h *UploadHandler) ListByListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	media, err := h.mediaService.ListByListing(listingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}
