// Package router contains routing setup for the HTTP delivery.
package router

import (
	"path/filepath"

	"agora/config"
	"agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config            *config.Config
	AuthHandler       *handler.AuthHandler
	DiscussionHandler *handler.DiscussionHandler
	ResponseHandler   *handler.ResponseHandler
	UserHandler       *handler.UserHandler
	AuthMiddleware    *middleware.AuthMiddleware
	AdminMiddleware   *middleware.AdminMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg               *config.Config
	authHandler       *handler.AuthHandler
	discussionHandler *handler.DiscussionHandler
	responseHandler   *handler.ResponseHandler
	userHandler       *handler.UserHandler
	authMiddleware    *middleware.AuthMiddleware
	adminMiddleware   *middleware.AdminMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:               params.Config,
		authHandler:       params.AuthHandler,
		discussionHandler: params.DiscussionHandler,
		responseHandler:   params.ResponseHandler,
		userHandler:       params.UserHandler,
		authMiddleware:    params.AuthMiddleware,
		adminMiddleware:   params.AdminMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth flow routes: reachable without a session by construction.
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/login", r.authHandler.Login)
		authGroup.GET("/redirect", r.authHandler.Redirect)
		authGroup.GET("/me", r.authHandler.Me)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// API routes behind the auth gate.
	apiGroup := e.Group("/api", r.authMiddleware.RequireSession)
	{
		apiGroup.GET("/discussions", r.discussionHandler.Today)
		apiGroup.GET("/discussions/unscheduled", r.discussionHandler.Unscheduled)
		apiGroup.GET("/discussions/all", r.discussionHandler.Upcoming)
		apiGroup.GET("/discussions/:id", r.discussionHandler.GetByID)
		apiGroup.POST("/discussions", r.discussionHandler.Create)
		apiGroup.PUT("/discussions", r.discussionHandler.Update)

		apiGroup.GET("/responses", r.responseHandler.Today)
		apiGroup.GET("/responses/replies", r.responseHandler.ByDiscussion)
		apiGroup.GET("/responses/user/:id", r.responseHandler.ByUser)
		apiGroup.GET("/responses/all/:id", r.responseHandler.AllByUser)
		apiGroup.POST("/responses", r.responseHandler.Post)
		apiGroup.POST("/responses/replies", r.responseHandler.Reply)

		apiGroup.GET("/users", r.userHandler.Current)
		apiGroup.GET("/users/all", r.userHandler.ListActive)
		apiGroup.GET("/users/search", r.userHandler.Search)
		apiGroup.GET("/users/:id", r.userHandler.GetByID)
		apiGroup.PUT("/users", r.userHandler.Disable)
	}

	// Root: auth gate first, then the admin gate decides between the admin
	// artifact and the public SPA index.
	e.GET("/", r.serveIndex, r.authMiddleware.RequireSession, r.adminMiddleware.ServeAdminArtifact)

	// Remaining public assets (scripts, styles, images).
	e.Static("/", r.cfg.Static.PublicDir)
}

func (r *router) serveIndex(c echo.Context) error {
	return c.File(filepath.Join(r.cfg.Static.PublicDir, "index.html"))
}
