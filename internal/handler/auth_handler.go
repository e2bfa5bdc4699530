package handler

import (
	"net/http"

	"user_portal/internal/middleware"
	"user_portal/internal/model"
	"user_portal/internal/service"
	"user_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

const registrationMessage = "Registration successful! You can now log in."

// AuthHandler handles the landing page, registration, login, logout and dashboard
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: " + err.Error()})
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"message": registrationMessage})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBind(&req); err != nil {
		// Missing fields can never match an account
		middleware.AbortWithError(c, service.ErrInvalidCredentials)
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout only clears the cookie; there is no server side session to drop
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithError(c, service.ErrUnauthenticated)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title": user.DisplayName(),
		"user":  user,
	})
}

// RegisterAuthRoutes registers auth routes. storeMW runs only on the routes that read or write users.
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRouter, storeMW gin.HandlersChain, sessionMW gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/logout", h.Logout)

	store := r.Group("", storeMW...)
	{
		store.POST("/register", h.Register)
		store.POST("/login", h.Login)
		store.GET("/dashboard", sessionMW, h.Dashboard)
	}
}
