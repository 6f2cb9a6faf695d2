// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"gisty/internal/delivery/http/middleware"
	"gisty/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Service banner and health check
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Gisty Chat Backend is running!")
	})
	e.GET("/health", handler.HealthCheck)

	// Account routes
	userGroup := e.Group("/api/users")
	{
		userGroup.POST("/register", r.accountHandler.Register)
		userGroup.POST("/login", r.accountHandler.Login)

		// The caller's own account, identified by the bearer token.
		userGroup.GET("/me", r.accountHandler.Me, r.authMiddleware.Authenticate)

		userGroup.GET("/:id", r.accountHandler.GetAccount)
		userGroup.PUT("/:id", r.accountHandler.UpdateAccount)
		userGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
	}
}
