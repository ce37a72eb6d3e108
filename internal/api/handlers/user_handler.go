package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
)

// UserHandler handles REST requests for the caller's profile.
type UserHandler struct {
	userService services.IUserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.IUserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /v1/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.PrincipalEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateProfile handles PUT /v1/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var payload models.User
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload: " + err.Error()})
		return
	}

	email := middleware.PrincipalEmail(c)
	// The profile email is the identity; it cannot be edited here.
	payload.Email = email

	updated, err := h.userService.UpdateProfile(c.Request.Context(), email, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}
