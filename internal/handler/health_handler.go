package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const healthMessage = "Translatix bot is running"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Status)
}

// Status reports that the process is up. Downstream services are not checked.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: healthMessage})
}
