package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devforge-studio/crm-backend/internal/auth/service"
	"github.com/devforge-studio/crm-backend/internal/auth/session"
)

type Handler struct {
	svc      *service.AuthService
	sessions *session.Store
}

func Register(rg *gin.RouterGroup, svc *service.AuthService, sessions *session.Store) {
	h := &Handler{svc: svc, sessions: sessions}

	rg.POST("/login/", h.login)
	rg.POST("/logout/", h.logout)
	rg.POST("/register/", h.register)
	rg.GET("/user/role/", h.userRole)
	rg.GET("/csrf/", h.csrf)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Role is accepted for wire compatibility with older clients but is
	// never read: the role is derived server-side from the identity.
	Role string `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("[error] operation=login error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.SetCookie(session.CookieName, sess.ID, int(session.DefaultTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "role": sess.Role})
}

func (h *Handler) logout(c *gin.Context) {
	if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
		if err := h.svc.Logout(c.Request.Context(), id); err != nil {
			log.Printf("[warn] operation=logout error=%v", err)
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// register is a stub: it reports success without creating a credential.
// A real signup flow is out of scope.
func (h *Handler) register(c *gin.Context) {
	log.Printf("[info] operation=register registration attempted")
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (h *Handler) userRole(c *gin.Context) {
	role := service.RoleStandard
	if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
		if sess, err := h.sessions.Get(c.Request.Context(), id); err == nil {
			role = service.RoleForUsername(sess.Username)
		}
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// csrf issues the anti-forgery token. The cookie is intentionally not
// HTTP-only so the frontend can echo it in the X-CSRF-Token header.
func (h *Handler) csrf(c *gin.Context) {
	token := uuid.New().String()
	c.SetCookie(CSRFCookieName, token, int(session.DefaultTTL.Seconds()), "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}
