package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"translatix/backend/internal/service"
)

// Bot adapts Client to the service ports: replies go out through the
// Messenger methods and attachments are fetched into a scratch directory.
type Bot struct {
	client   *Client
	tempDir  string
	maxBytes int64
}

var (
	_ service.Messenger   = (*Bot)(nil)
	_ service.FileFetcher = (*Bot)(nil)
)

// NewBot creates the adapter. tempDir defaults to the OS temp directory.
func NewBot(client *Client, tempDir string, maxBytes int64) *Bot {
	if strings.TrimSpace(tempDir) == "" {
		tempDir = os.TempDir()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDownloadBytes
	}
	return &Bot{client: client, tempDir: tempDir, maxBytes: maxBytes}
}

func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := b.client.SendMessage(ctx, chatID, text, nil)
	return err
}

func (b *Bot) SendMenu(ctx context.Context, chatID int64, text string, menu service.Menu) (int64, error) {
	msg, err := b.client.SendMessage(ctx, chatID, text, keyboard(menu))
	if err != nil {
		return 0, err
	}
	return int64(msg.ID), nil
}

func (b *Bot) EditText(ctx context.Context, chatID, messageID int64, text string) error {
	if messageID == 0 {
		return b.SendText(ctx, chatID, text)
	}
	return b.client.EditMessageText(ctx, chatID, messageID, text, nil)
}

func (b *Bot) EditMenu(ctx context.Context, chatID, messageID int64, text string, menu service.Menu) error {
	if messageID == 0 {
		_, err := b.SendMenu(ctx, chatID, text, menu)
		return err
	}
	return b.client.EditMessageText(ctx, chatID, messageID, text, keyboard(menu))
}

func (b *Bot) AnswerCallback(ctx context.Context, queryID, text string) error {
	if queryID == "" {
		return nil
	}
	return b.client.AnswerCallbackQuery(ctx, queryID, text)
}

// Fetch downloads the attachment to a uniquely named file that keeps the
// original extension, so uploaders can infer the content type.
func (b *Bot) Fetch(ctx context.Context, fileID, fileName string) (string, error) {
	file, err := b.client.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = filepath.Ext(file.FilePath)
	}
	if err := os.MkdirAll(b.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	dst := filepath.Join(b.tempDir, uuid.NewString()+strings.ToLower(ext))

	if _, err := b.client.DownloadFile(ctx, file.FilePath, dst, b.maxBytes); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return dst, nil
}

func keyboard(menu service.Menu) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(menu))
	for _, row := range menu {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: btn.Label, CallbackData: btn.Data})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
