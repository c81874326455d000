package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"translatix/backend/internal/handler"
)

// NewRouter serves the health check and, when webhookHandler is non-nil, the
// Telegram webhook endpoint.
func NewRouter(healthHandler *handler.HealthHandler, webhookHandler *handler.WebhookHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("2M"))

	healthHandler.RegisterRoutes(e)
	if webhookHandler != nil {
		webhookHandler.RegisterRoutes(e)
	}

	return e
}
