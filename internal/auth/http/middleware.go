package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/auth/session"
)

// Gin context keys set by RequireSession.
const (
	CtxUserID   = "session_user_id"
	CtxUsername = "session_username"
	CtxRole     = "session_role"
	CtxSession  = "session_id"
)

// CSRFCookieName is readable by the frontend (not HTTP-only) so it can
// echo the token back in the X-CSRF-Token header.
const CSRFCookieName = "csrf_token"

// RequireSession loads the session referenced by the cookie and puts the
// caller's identity in the gin context. Requests without a valid session
// get a 401.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || strings.TrimSpace(id) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		c.Set(CtxSession, sess.ID)
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxUsername, sess.Username)
		c.Set(CtxRole, sess.Role)
		c.Next()
	}
}

// RequireCSRF enforces the double-submit check on state-changing
// requests: the X-CSRF-Token header must match the csrf cookie issued by
// GET /csrf/.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookieName)
		header := c.GetHeader("X-CSRF-Token")
		if err != nil || cookie == "" || header == "" || cookie != header {
			c.JSON(http.StatusForbidden, gin.H{"error": "CSRF token missing or invalid"})
			c.Abort()
			return
		}
		c.Next()
	}
}
