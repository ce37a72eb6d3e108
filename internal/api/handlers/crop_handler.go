package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
)

// CropHandler handles REST requests for crop listings.
type CropHandler struct {
	cropService     services.ICropService
	interestService services.IInterestService
}

// NewCropHandler creates a new CropHandler.
func NewCropHandler(cropService services.ICropService, interestService services.IInterestService) *CropHandler {
	return &CropHandler{
		cropService:     cropService,
		interestService: interestService,
	}
}

// Browse handles GET /v1/crops
func (h *CropHandler) Browse(c *gin.Context) {
	filter := models.CropFilter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Sort:   c.Query("sort"),
	}

	crops, err := h.cropService.Browse(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": crops})
}

// Get handles GET /v1/crops/:id
// The response pairs the listing with the interest affordance the caller
// gets on it, so the detail page renders exactly one of submit/manage.
func (h *CropHandler) Get(c *gin.Context) {
	crop, err := h.cropService.GetCrop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	action, err := h.interestService.ActionFor(c.Request.Context(), crop, middleware.PrincipalEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":           crop,
		"interestAction": action,
	})
}

// Categories handles GET /v1/crops/categories
func (h *CropHandler) Categories(c *gin.Context) {
	categories, err := h.cropService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// MyPosts handles GET /v1/crops/my-posts
func (h *CropHandler) MyPosts(c *gin.Context) {
	crops, err := h.cropService.MyPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crops})
}

// Create handles POST /v1/crops
func (h *CropHandler) Create(c *gin.Context) {
	var payload models.NewCrop
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload: " + err.Error()})
		return
	}

	created, err := h.cropService.CreateCrop(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Update handles PUT /v1/crops/:id
func (h *CropHandler) Update(c *gin.Context) {
	var payload models.NewCrop
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload: " + err.Error()})
		return
	}

	updated, err := h.cropService.UpdateCrop(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete handles DELETE /v1/crops/:id
func (h *CropHandler) Delete(c *gin.Context) {
	if err := h.cropService.DeleteCrop(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
