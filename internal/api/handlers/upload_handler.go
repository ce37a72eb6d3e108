package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/storage"
	"github.com/rubayet2027/KrishiLink-Client/internal/tasks"
)

// UploadHandler hands out pre-signed S3 URLs for crop images and enqueues
// normalization once the browser reports the upload done.
type UploadHandler struct {
	storageService storage.IS3Storage
	taskClient     *asynq.Client
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(storageService storage.IS3Storage, taskClient *asynq.Client) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		taskClient:     taskClient,
	}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// Presign handles POST /v1/uploads
func (h *UploadHandler) Presign(c *gin.Context) {
	var payload presignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename and contentType are required"})
		return
	}
	if !strings.HasPrefix(payload.ContentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are accepted"})
		return
	}

	uploadURL, key, err := h.storageService.GeneratePresignedPutURL(
		c.Request.Context(),
		middleware.PrincipalEmail(c),
		payload.Filename,
		payload.ContentType,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"uploadUrl": uploadURL,
		"key":       key,
		"publicUrl": h.storageService.ObjectURL(key),
	}})
}

type uploadCompleteRequest struct {
	Key string `json:"key" binding:"required"`
}

// Complete handles POST /v1/uploads/complete
func (h *UploadHandler) Complete(c *gin.Context) {
	var payload uploadCompleteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Object key is required"})
		return
	}
	// Only keys minted by Presign for this principal are processable.
	if !strings.HasPrefix(payload.Key, "crops/"+middleware.PrincipalEmail(c)+"/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown object key"})
		return
	}

	task, err := tasks.NewImageProcessTask(payload.Key)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.taskClient.EnqueueContext(c.Request.Context(), task); err != nil {
		log.Printf("Failed to enqueue image task for %s: %v", payload.Key, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image processing is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Image queued for processing"})
}
