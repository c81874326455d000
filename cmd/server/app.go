package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"translatix/backend/internal/config"
	"translatix/backend/internal/db"
	"translatix/backend/internal/handler"
	transport "translatix/backend/internal/http"
	"translatix/backend/internal/logger"
	"translatix/backend/internal/media"
	"translatix/backend/internal/network"
	"translatix/backend/internal/repository"
	"translatix/backend/internal/scheduler"
	"translatix/backend/internal/service"
	"translatix/backend/internal/snowflake"
	"translatix/backend/internal/supabase"
	"translatix/backend/internal/telegram"
)

type runMode int

const (
	modePoll runMode = iota
	modeWebhook
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg        config.Config
	dbConn     *sql.DB
	client     *telegram.Client
	dispatcher *telegram.Dispatcher
	sched      *scheduler.Scheduler
}

func newTelegramClient(cfg config.Config) (*telegram.Client, error) {
	factory := network.NewClientFactory(cfg.ProxyURL)
	// Long polls hold the connection for PollTimeout.
	httpClient := factory.NewHTTPClient(cfg.Telegram.PollTimeout + 30*time.Second)
	return telegram.NewClient(httpClient, cfg.Telegram.APIBase, cfg.Telegram.Token, cfg.Telegram.PollTimeout, cfg.Telegram.RateLimit)
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	if err := snowflake.Init(cfg.SnowflakeID); err != nil {
		return nil, fmt.Errorf("init snowflake: %w", err)
	}

	factory := network.NewClientFactory(cfg.ProxyURL)
	if factory.ProxyURL() != "" {
		if err := factory.TestProxy(ctx, cfg.Telegram.APIBase); err != nil {
			logger.Warn("proxy check failed", "module", "main", "action", "check", "resource", "proxy", "result", "failed", "error", err)
		}
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	jobRepo, err := newJobRepository(cfg, dbConn)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	client, err := newTelegramClient(cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	me, err := client.GetMe(ctx)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("telegram getMe: %w", err)
	}
	logger.Info("bot authorized", "module", "main", "action", "start", "resource", "telegram", "result", "ok", "username", me.Username, "media_backend", cfg.MediaBackend, "job_store", cfg.JobStore)

	bot := telegram.NewBot(client, filepath.Join(cfg.DataDir, "tmp"), telegram.DefaultMaxDownloadBytes)
	jobService := service.NewJobService(bot, uploader, jobRepo)
	conversations := service.NewConversationService(repository.NewSessionRepository(dbConn), jobService, bot)

	return &app{
		cfg:        cfg,
		dbConn:     dbConn,
		client:     client,
		dispatcher: telegram.NewDispatcher(conversations),
		sched:      scheduler.New(conversations, cfg.SessionTTL, ""),
	}, nil
}

func newJobRepository(cfg config.Config, dbConn *sql.DB) (repository.JobRepository, error) {
	switch cfg.JobStore {
	case config.JobStoreSupabase:
		return supabase.NewJobRepository(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Table)
	case config.JobStoreSQLite:
		return repository.NewJobRepository(dbConn), nil
	default:
		return nil, fmt.Errorf("unknown job store %q", cfg.JobStore)
	}
}

func newUploader(ctx context.Context, cfg config.Config) (media.Uploader, error) {
	switch cfg.MediaBackend {
	case config.MediaBackendCloudinary:
		return media.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	case config.MediaBackendS3:
		return media.NewS3Uploader(ctx, media.S3Options{
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			Prefix:        cfg.S3.Prefix,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

// Run serves HTTP and, in poll mode, long-polls Telegram until ctx is done.
func (a *app) Run(ctx context.Context, mode runMode) error {
	var webhookHandler *handler.WebhookHandler
	if mode == modeWebhook {
		webhookHandler = handler.NewWebhookHandler(a.dispatcher, a.cfg.Telegram.WebhookPath, a.cfg.Telegram.WebhookSecret)
	}
	router := transport.NewRouter(handler.NewHealthHandler(), webhookHandler)

	if err := a.sched.Start(); err != nil {
		return err
	}
	defer a.sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", "module", "main", "action", "serve", "resource", "http", "result", "ok", "addr", a.cfg.Addr)
		if err := router.Start(a.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(router)
	})
	if mode == modePoll {
		g.Go(func() error {
			return telegram.NewPoller(a.client, a.dispatcher).Run(gctx)
		})
	}

	err := g.Wait()
	logger.Info("shutting down", "module", "main", "action", "stop", "resource", "server", "result", "ok")
	return err
}

func shutdown(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

func (a *app) Close() {
	if err := a.dbConn.Close(); err != nil {
		logger.Warn("close database failed", "module", "main", "action", "close", "resource", "database", "result", "failed", "error", err)
	}
}
