package handler

import (
	"net/http"

	"user_portal/internal/middleware"
	"user_portal/internal/model"
	"user_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles the admin-only user management endpoints
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{"users": users})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// RegisterUserRoutes registers the /users routes behind the session and admin checks
func (h *UserHandler) RegisterUserRoutes(r gin.IRouter, storeMW gin.HandlersChain, sessionMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	chain := append(append(gin.HandlersChain{}, storeMW...), sessionMW, adminMW)
	users := r.Group("/users", chain...)
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
	}
}
