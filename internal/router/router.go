package router

import (
	"fmt"

	"user_portal/internal/handler"
	"user_portal/internal/middleware"
	"user_portal/internal/service"
	"user_portal/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	AuthService service.AuthService
	UserService service.UserService
	Logger      *logrus.Logger
	// Pool hands out a connection to requests that touch the store; nil leaves the repository on its own handle
	Pool middleware.ConnAcquirer
	DB   handler.Pinger
}

// New builds the gin engine with all routes registered
func New(deps Deps) (*gin.Engine, error) {
	templates, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware())

	if deps.DB != nil {
		router.GET("/health", handler.Health(deps.DB))
	}

	var storeMW gin.HandlersChain
	if deps.Pool != nil {
		storeMW = append(storeMW, middleware.ScopedConnMiddleware(deps.Pool, deps.Logger))
	}

	sessionMW := middleware.SessionMiddleware(deps.AuthService)
	adminMW := middleware.AdminMiddleware()

	handler.NewAuthHandler(deps.AuthService).RegisterAuthRoutes(router, storeMW, sessionMW)
	handler.NewUserHandler(deps.UserService).RegisterUserRoutes(router, storeMW, sessionMW, adminMW)

	return router, nil
}
