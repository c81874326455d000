package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-telegram/bot/models"
	"github.com/labstack/echo/v4"

	"translatix/backend/internal/logger"
)

// SecretTokenHeader carries the secret registered with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateDispatcher handles one decoded update.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, u *models.Update) error
}

type WebhookHandler struct {
	dispatcher UpdateDispatcher
	path       string
	secret     string
}

func NewWebhookHandler(dispatcher UpdateDispatcher, path, secret string) *WebhookHandler {
	if path == "" {
		path = "/telegram/webhook"
	}
	return &WebhookHandler{dispatcher: dispatcher, path: path, secret: secret}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST(h.path, h.Receive)
}

// Receive decodes one update and dispatches it. Once the body decodes the
// response is always 200, so Telegram does not redeliver on handler errors.
func (h *WebhookHandler) Receive(c echo.Context) error {
	if h.secret != "" {
		got := c.Request().Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			logger.Warn("webhook secret mismatch", "module", "handler", "action", "receive", "resource", "webhook", "result", "rejected", "remote_ip", c.RealIP())
			return Error(c, http.StatusForbidden, "forbidden")
		}
	}

	var update models.Update
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		return Error(c, http.StatusBadRequest, "invalid update")
	}

	if err := h.dispatcher.Dispatch(c.Request().Context(), &update); err != nil {
		logger.Error("update handling failed", "module", "handler", "action", "dispatch", "resource", "update", "result", "failed", "update_id", update.ID, "error", err)
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}
