package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
)

// respondError maps the error taxonomy onto HTTP responses. The 401 for an
// expired authentication is a signal the front-end reacts to by re-running
// sign-in; nothing here redirects.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
		return
	}

	if errors.Is(err, apiclient.ErrAuthExpired) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again", "authExpired": true})
		return
	}

	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		// Pass the marketplace API's verdict through unchanged.
		c.JSON(httpErr.Status, gin.H{"error": httpErr.Message()})
		return
	}

	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		log.Printf("Marketplace API unreachable: %v", netErr)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Marketplace API is unreachable, try again shortly"})
		return
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
