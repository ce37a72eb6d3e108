package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
)

// InterestHandler handles REST requests for the interest lifecycle.
type InterestHandler struct {
	cropService     services.ICropService
	interestService services.IInterestService
}

// NewInterestHandler creates a new InterestHandler.
func NewInterestHandler(cropService services.ICropService, interestService services.IInterestService) *InterestHandler {
	return &InterestHandler{
		cropService:     cropService,
		interestService: interestService,
	}
}

// submitInterestRequest is the client payload for expressing interest.
// Buyer identity comes from the session, never from the request body.
type submitInterestRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message"`
}

// Submit handles POST /v1/crops/:id/interests
func (h *InterestHandler) Submit(c *gin.Context) {
	var payload submitInterestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest payload: " + err.Error()})
		return
	}

	sess := middleware.SessionFrom(c)
	crop, err := h.cropService.GetCrop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.interestService.ExpressInterest(c.Request.Context(), crop, models.NewInterest{
		BuyerName:  sess.Name,
		BuyerEmail: sess.Email,
		BuyerPhoto: sess.Photo,
		Phone:      payload.Phone,
		Message:    payload.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListForCrop handles GET /v1/crops/:id/interests
func (h *InterestHandler) ListForCrop(c *gin.Context) {
	crop, err := h.cropService.GetCrop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	interests, err := h.interestService.ListForCrop(c.Request.Context(), crop, middleware.PrincipalEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": interests})
}

// MyInterests handles GET /v1/interests/my
func (h *InterestHandler) MyInterests(c *gin.Context) {
	interests, err := h.interestService.MyInterests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": interests})
}

// decideRequest carries the owner's accept/reject decision.
type decideRequest struct {
	Decision models.Decision `json:"decision" binding:"required"`
}

// Decide handles PATCH /v1/crops/:id/interests/:interestId
func (h *InterestHandler) Decide(c *gin.Context) {
	var payload decideRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision payload: " + err.Error()})
		return
	}

	updated, err := h.interestService.Decide(
		c.Request.Context(),
		c.Param("id"),
		c.Param("interestId"),
		payload.Decision,
		middleware.PrincipalEmail(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}
