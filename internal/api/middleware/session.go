package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/config"
)

const (
	// ContextKeySession holds the key for the resolved session in Gin context.
	ContextKeySession = "session"
	// ContextKeyEmail holds the key for the signed-in principal's email.
	ContextKeyEmail = "principalEmail"
)

// SessionMiddleware resolves the session cookie into a server-side session
// and attaches it to the request context. Anonymous requests pass through
// untouched; a cookie that fails validation is treated as anonymous rather
// than rejected, because most routes are browsable signed out.
func SessionMiddleware(cfg *config.Config, sessions auth.ISessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		claims, err := auth.ValidateJWT(cookie, cfg.JwtSecret)
		if err != nil {
			log.Printf("Discarding invalid session cookie: %v", err)
			c.SetCookie(cfg.CookieName, "", -1, "/", "", false, true)
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			// Cookie outlived the server-side session. Drop it.
			log.Printf("Session %s not resolvable: %v", claims.SessionID, err)
			c.SetCookie(cfg.CookieName, "", -1, "/", "", false, true)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), sess))
		c.Set(ContextKeySession, sess)
		c.Set(ContextKeyEmail, sess.Email)

		c.Next()
	}
}

// RequireSession aborts with 401 unless SessionMiddleware resolved a session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeySession); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
			return
		}
		c.Next()
	}
}

// PrincipalEmail returns the signed-in email, or "" for anonymous requests.
func PrincipalEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

// SessionFrom returns the resolved session, or nil for anonymous requests.
func SessionFrom(c *gin.Context) *auth.Session {
	if v, exists := c.Get(ContextKeySession); exists {
		return v.(*auth.Session)
	}
	return nil
}
