package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/customer-pulse/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	recoveryHandler *Recovery
	nextStepHandler *NextStep
	entityHandler   *Entity
	webhookHandler  *RecallWebhook
	authMW          echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	recoveryHandler *Recovery,
	nextStepHandler *NextStep,
	entityHandler *Entity,
	webhookHandler *RecallWebhook,
	authMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:             cfg,
		recoveryHandler: recoveryHandler,
		nextStepHandler: nextStepHandler,
		entityHandler:   entityHandler,
		webhookHandler:  webhookHandler,
		authMW:          authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupPipelineRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupPipelineRoutes configures service-authenticated pipeline routes
func (rt *Router) setupPipelineRoutes(g *echo.Group) {
	var mws []echo.MiddlewareFunc
	if rt.authMW != nil {
		mws = append(mws, rt.authMW)
	}

	if rt.recoveryHandler != nil {
		g.POST("/recovery/sweep", rt.recoveryHandler.Sweep, mws...)
	} else {
		g.POST("/recovery/sweep", rt.notImplemented, mws...)
	}

	if rt.nextStepHandler != nil {
		g.POST("/next-steps/extract", rt.nextStepHandler.Extract, mws...)
	} else {
		g.POST("/next-steps/extract", rt.notImplemented, mws...)
	}

	if rt.entityHandler != nil {
		g.POST("/threads/:thread_id/resolve-entities", rt.entityHandler.ResolveEntities, mws...)
	} else {
		g.POST("/threads/:thread_id/resolve-entities", rt.notImplemented, mws...)
	}
}

// setupWebhookRoutes configures vendor webhooks; they authenticate by signature
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")
	if rt.webhookHandler != nil {
		webhooks.POST("/recall", rt.webhookHandler.Handle)
	} else {
		webhooks.POST("/recall", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "unknown"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
