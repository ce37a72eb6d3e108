package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/config"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
)

// SessionHandler handles registration, sign-in, sign-out and the
// current-session lookup.
type SessionHandler struct {
	cfg         *config.Config
	identity    auth.IIdentityClient
	sessions    auth.ISessionStore
	userService services.IUserService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(cfg *config.Config, identity auth.IIdentityClient, sessions auth.ISessionStore, userService services.IUserService) *SessionHandler {
	return &SessionHandler{
		cfg:         cfg,
		identity:    identity,
		sessions:    sessions,
		userService: userService,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Photo    string `json:"photo"`
}

// Login handles POST /v1/session
func (h *SessionHandler) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	tok, err := h.identity.PasswordLogin(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Printf("Sign-in failed for %s: %v", payload.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.establishSession(c, tok, nil)
}

// Register handles POST /v1/session/register
func (h *SessionHandler) Register(c *gin.Context) {
	var payload registerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and a password of at least 6 characters are required"})
		return
	}

	tok, err := h.identity.SignUp(c.Request.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		log.Printf("Sign-up failed for %s: %v", payload.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create account"})
		return
	}

	// The provider's sign-up token may not carry profile claims yet, so
	// the submitted name and photo fill the gaps.
	h.establishSession(c, tok, &auth.Principal{
		Email: payload.Email,
		Name:  payload.Name,
		Photo: payload.Photo,
	})
}

// establishSession turns a fresh token set into a server-side session and a
// signed cookie, then syncs the marketplace profile. fallback supplies
// principal fields missing from the ID token, if non-nil.
func (h *SessionHandler) establishSession(c *gin.Context, tok *oauth2.Token, fallback *auth.Principal) {
	principal, err := auth.PrincipalFromToken(tok)
	if err != nil {
		if fallback == nil {
			respondError(c, err)
			return
		}
		principal = fallback
	}
	if fallback != nil {
		if principal.Name == "" {
			principal.Name = fallback.Name
		}
		if principal.Photo == "" {
			principal.Photo = fallback.Photo
		}
	}

	sess := auth.NewSession(principal, tok.RefreshToken)
	sess.AccessToken = tok.AccessToken
	sess.TokenExpiry = tok.Expiry
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}

	cookieValue, err := auth.GenerateJWT(sess.ID, sess.Email, h.cfg.JwtSecret, h.cfg.SessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(h.cfg.CookieName, cookieValue, int(h.cfg.SessionTTL.Seconds()), "/", "", false, true)

	// Keep the marketplace profile in step with the identity record. The
	// session is valid either way; a sync failure only delays the profile.
	ctx := auth.WithSession(c.Request.Context(), sess)
	if _, err := h.userService.SyncProfile(ctx, principal); err != nil {
		log.Printf("Profile sync failed for %s: %v", principal.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"email": sess.Email,
		"name":  sess.Name,
		"photo": sess.Photo,
	}})
}

// Logout handles DELETE /v1/session
func (h *SessionHandler) Logout(c *gin.Context) {
	if sess := middleware.SessionFrom(c); sess != nil {
		if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			log.Printf("Failed to delete session %s: %v", sess.ID, err)
		}
	}
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Current handles GET /v1/session
func (h *SessionHandler) Current(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"email": sess.Email,
		"name":  sess.Name,
		"photo": sess.Photo,
	}})
}
