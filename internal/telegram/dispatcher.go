package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot/models"

	"translatix/backend/internal/logger"
	"translatix/backend/internal/service"
)

// Dispatcher routes decoded updates to the conversation service. It is shared
// by the long-poll loop and the webhook handler.
type Dispatcher struct {
	conversations service.ConversationService
}

func NewDispatcher(conversations service.ConversationService) *Dispatcher {
	return &Dispatcher{conversations: conversations}
}

// Dispatch handles one update. Updates the bot does not react to return nil.
func (d *Dispatcher) Dispatch(ctx context.Context, u *models.Update) error {
	switch {
	case u == nil:
		return nil
	case u.CallbackQuery != nil:
		return d.dispatchCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		return d.dispatchMessage(ctx, u.Message)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, q *models.CallbackQuery) error {
	ev := service.CallbackEvent{QueryID: q.ID, Data: q.Data}
	switch {
	case q.Message.Message != nil:
		ev.ChatID = q.Message.Message.Chat.ID
		ev.MessageID = int64(q.Message.Message.ID)
	case q.Message.InaccessibleMessage != nil:
		ev.ChatID = q.Message.InaccessibleMessage.Chat.ID
		ev.MessageID = int64(q.Message.InaccessibleMessage.MessageID)
	}
	if ev.ChatID == 0 {
		ev.ChatID = q.From.ID
	}
	if ev.ChatID == 0 {
		logger.Debug("callback without chat ignored", "module", "telegram", "action", "dispatch", "resource", "callback", "result", "ignored", "query_id", q.ID)
		return nil
	}
	return d.conversations.HandleCallback(ctx, ev)
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, msg *models.Message) error {
	chatID := msg.Chat.ID
	if chatID == 0 {
		return nil
	}

	if msg.Document != nil {
		return d.conversations.HandleDocument(ctx, service.DocumentEvent{
			ChatID:    chatID,
			MessageID: int64(msg.ID),
			FileID:    msg.Document.FileID,
			FileName:  msg.Document.FileName,
			MimeType:  msg.Document.MimeType,
			Caption:   msg.Caption,
		})
	}

	if name, args, ok := parseCommand(msg.Text); ok {
		return d.conversations.HandleCommand(ctx, service.Command{ChatID: chatID, Name: name, Args: args})
	}
	return nil
}

// parseCommand splits "/start@my_bot args" into ("start", "args").
func parseCommand(text string) (string, string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, args, _ := strings.Cut(text, " ")
	name, _, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(args), true
}
