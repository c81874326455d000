package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"

	"translatix/backend/internal/logger"
)

// DefaultMaxDownloadBytes is the Bot API limit for getFile downloads.
const DefaultMaxDownloadBytes = 20 * 1024 * 1024

const defaultAPIBase = "https://api.telegram.org"

// allowedUpdates restricts delivery to the update kinds the bot handles.
var allowedUpdates = []string{"message", "callback_query"}

// Client wraps the Bot API library. Outbound calls share one rate limiter.
type Client struct {
	bot     *bot.Bot
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

// NewClient creates a client without contacting Telegram. ratePerSecond <= 0
// disables throttling. pollTimeout bounds each getUpdates long poll.
func NewClient(httpClient *http.Client, baseURL, token string, pollTimeout time.Duration, ratePerSecond int) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultAPIBase
	}
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}

	b, err := bot.New(token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(baseURL),
		bot.WithHTTPClient(pollTimeout, httpClient),
		bot.WithAllowedUpdates(bot.AllowedUpdates(allowedUpdates)),
		bot.WithNotAsyncHandlers(),
		bot.WithErrorsHandler(func(err error) {
			logger.Warn("telegram polling error", "module", "telegram", "action", "poll", "resource", "updates", "result", "failed", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond)
	}
	return &Client{
		bot:     b,
		http:    httpClient,
		baseURL: baseURL,
		token:   token,
		limiter: limiter,
	}, nil
}

func (c *Client) GetMe(ctx context.Context) (*models.User, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.bot.GetMe(ctx)
}

func (c *Client) GetFile(ctx context.Context, fileID string) (*models.File, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, errors.New("missing file_id")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	file, err := c.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(file.FilePath) == "" {
		return nil, errors.New("telegram getFile: missing file_path")
	}
	return file, nil
}

// DownloadFile copies the file at filePath (from GetFile) to dstPath,
// failing when it exceeds maxBytes.
func (c *Client) DownloadFile(ctx context.Context, filePath, dstPath string, maxBytes int64) (int64, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return 0, errors.New("missing file_path")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDownloadBytes
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, strings.TrimLeft(filePath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return 0, fmt.Errorf("telegram download http %d: read body: %w", resp.StatusCode, err)
		}
		return 0, fmt.Errorf("telegram download http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dstPath)
		return n, fmt.Errorf("telegram download: %w", err)
	}
	if err := f.Close(); err != nil {
		return n, err
	}
	if n > maxBytes {
		_ = os.Remove(dstPath)
		return n, fmt.Errorf("telegram file too large (>%d bytes)", maxBytes)
	}
	return n, nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup *models.InlineKeyboardMarkup) (*models.Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	return c.bot.SendMessage(ctx, params)
}

// EditMessageText replaces the text of a message; a nil markup removes its keyboard.
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *models.InlineKeyboardMarkup) error {
	if messageID == 0 {
		return errors.New("missing message_id")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	params := &bot.EditMessageTextParams{ChatID: chatID, MessageID: int(messageID), Text: text}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	_, err := c.bot.EditMessageText(ctx, params)
	if isNotModifiedError(err) {
		return nil
	}
	return err
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, queryID, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	})
	return err
}

func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	_, err := c.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            webhookURL,
		SecretToken:    secret,
		AllowedUpdates: allowedUpdates,
	})
	return err
}

func (c *Client) DeleteWebhook(ctx context.Context, dropPending bool) error {
	_, err := c.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: dropPending})
	return err
}

// Poll runs getUpdates long polling until ctx is done, passing each update to
// handle in delivery order.
func (c *Client) Poll(ctx context.Context, handle func(ctx context.Context, update *models.Update)) {
	id := c.bot.RegisterHandlerMatchFunc(func(*models.Update) bool { return true }, func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		handle(ctx, update)
	})
	defer c.bot.UnregisterHandler(id)
	c.bot.Start(ctx)
}

func isNotModifiedError(err error) bool {
	if err == nil || !errors.Is(err, bot.ErrorBadRequest) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "message is not modified")
}
