package telegram

import (
	"context"
	"errors"

	"github.com/go-telegram/bot/models"

	"translatix/backend/internal/logger"
)

// Poller drives the Dispatcher from getUpdates long polling.
type Poller struct {
	client     *Client
	dispatcher *Dispatcher
}

func NewPoller(client *Client, dispatcher *Dispatcher) *Poller {
	return &Poller{client: client, dispatcher: dispatcher}
}

// Run polls until ctx is cancelled. A registered webhook is removed first
// because Telegram refuses getUpdates while one is set. Handler errors are
// logged and never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.client.DeleteWebhook(ctx, false); err != nil {
		logger.Warn("delete webhook failed", "module", "telegram", "action", "delete", "resource", "webhook", "result", "failed", "error", err)
	}
	logger.Info("polling started", "module", "telegram", "action", "poll", "resource", "updates", "result", "started")

	p.client.Poll(ctx, func(ctx context.Context, u *models.Update) {
		if err := p.dispatcher.Dispatch(ctx, u); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return
			}
			logger.Error("update handling failed", "module", "telegram", "action", "dispatch", "resource", "update", "result", "failed", "update_id", u.ID, "error", err)
		}
	})

	logger.Info("polling stopped", "module", "telegram", "action", "poll", "resource", "updates", "result", "ok")
	return nil
}
