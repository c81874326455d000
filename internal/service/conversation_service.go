package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"translatix/backend/internal/logger"
	"translatix/backend/internal/model"
	"translatix/backend/internal/repository"
)

//go:generate mockgen -source=conversation_service.go -destination=mock/conversation_service.go -package=mock

const (
	WelcomeText        = "Welcome! Please upload a Word file to start the translation process."
	HelpText           = "Send a Word (.docx) file, then pick the original and the target language.\n\n/cancel - abandon the current selection\n/jobs - show your latest requests"
	CancelledText      = "Cancelled. Send a Word file to start again."
	ChooseSourceText   = "Please choose the original language:"
	ChooseTargetText   = "Please choose the target language:"
	QueuedTextFormat   = "Your file has been uploaded and queued for translation. File URL: %s"
	SubmitFailedText   = "Sorry, the upload failed. Please send the document again."
	ExpiredText        = "This selection has expired. Please upload the document again."
	UnknownOptionText  = "Unknown option."
	NoJobsText         = "No jobs yet."
	recentJobsLimit    = 5
	minCaptionHintRune = 12
)

const (
	callbackSource = "src"
	callbackTarget = "dst"
)

type ConversationService interface {
	HandleCommand(ctx context.Context, cmd Command) error
	HandleDocument(ctx context.Context, ev DocumentEvent) error
	HandleCallback(ctx context.Context, ev CallbackEvent) error
	// ExpireSessions drops selections idle for longer than ttl.
	ExpireSessions(ctx context.Context, ttl time.Duration) (int64, error)
}

type conversationService struct {
	sessions  repository.SessionRepository
	jobs      JobService
	messenger Messenger
	locks     *chatLocks
	now       func() time.Time
}

func NewConversationService(sessions repository.SessionRepository, jobs JobService, messenger Messenger) ConversationService {
	return &conversationService{
		sessions:  sessions,
		jobs:      jobs,
		messenger: messenger,
		locks:     newChatLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *conversationService) HandleCommand(ctx context.Context, cmd Command) error {
	switch strings.ToLower(cmd.Name) {
	case "start":
		return s.messenger.SendText(ctx, cmd.ChatID, WelcomeText)
	case "help":
		return s.messenger.SendText(ctx, cmd.ChatID, HelpText)
	case "cancel":
		unlock := s.locks.Lock(cmd.ChatID)
		defer unlock()
		if err := s.sessions.Delete(ctx, cmd.ChatID); err != nil {
			return err
		}
		return s.messenger.SendText(ctx, cmd.ChatID, CancelledText)
	case "jobs":
		jobs, err := s.jobs.ListByChat(ctx, cmd.ChatID, recentJobsLimit)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return s.messenger.SendText(ctx, cmd.ChatID, formatJobs(jobs))
	default:
		logger.Debug("unknown command ignored", "module", "service", "action", "command", "resource", "conversation", "result", "ignored", "chat_id", cmd.ChatID, "command", cmd.Name)
		return nil
	}
}

func (s *conversationService) HandleDocument(ctx context.Context, ev DocumentEvent) error {
	if ev.MimeType != model.WordDocumentMIME {
		logger.Debug("document ignored", "module", "service", "action", "receive", "resource", "document", "result", "ignored", "chat_id", ev.ChatID, "mime_type", ev.MimeType)
		return nil
	}
	if strings.TrimSpace(ev.FileID) == "" {
		return fmt.Errorf("%w: missing file reference", ErrInvalid)
	}

	unlock := s.locks.Lock(ev.ChatID)
	defer unlock()

	hint := detectCaptionLanguage(ev.Caption)
	messageID, err := s.messenger.SendMenu(ctx, ev.ChatID, ChooseSourceText, languageMenu(callbackSource, hint))
	if err != nil {
		return fmt.Errorf("send source menu: %w", err)
	}

	// A new document always restarts the selection.
	session := model.Session{
		ChatID:          ev.ChatID,
		State:           model.SessionAwaitingSource,
		FileID:          ev.FileID,
		FileName:        ev.FileName,
		PromptMessageID: messageID,
		UpdatedAt:       s.now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	logger.Info("document received", "module", "service", "action", "receive", "resource", "document", "result", "ok", "chat_id", ev.ChatID, "file_name", ev.FileName)
	return nil
}

func (s *conversationService) HandleCallback(ctx context.Context, ev CallbackEvent) error {
	stage, lang, ok := parseCallbackData(ev.Data)
	if !ok {
		return s.messenger.AnswerCallback(ctx, ev.QueryID, UnknownOptionText)
	}

	unlock := s.locks.Lock(ev.ChatID)
	defer unlock()

	session, err := s.sessions.Get(ctx, ev.ChatID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !acceptsCallback(session, stage, ev.MessageID) {
		logger.Warn("stale selection rejected", "module", "service", "action", "select", "resource", "conversation", "result", "rejected", "chat_id", ev.ChatID, "data", ev.Data)
		return s.messenger.AnswerCallback(ctx, ev.QueryID, ExpiredText)
	}

	if stage == callbackSource {
		return s.selectSource(ctx, *session, lang, ev)
	}
	return s.selectTarget(ctx, *session, lang, ev)
}

func (s *conversationService) selectSource(ctx context.Context, session model.Session, lang model.Language, ev CallbackEvent) error {
	previous := session
	session.SourceLanguage = lang
	session.State = model.SessionAwaitingTarget
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.messenger.AnswerCallback(ctx, ev.QueryID, ""); err != nil {
		return s.restoreSession(ctx, previous, fmt.Errorf("answer callback: %w", err))
	}
	if err := s.messenger.EditMenu(ctx, ev.ChatID, session.PromptMessageID, ChooseTargetText, languageMenu(callbackTarget, "")); err != nil {
		return s.restoreSession(ctx, previous, fmt.Errorf("show target menu: %w", err))
	}
	return nil
}

// restoreSession puts back the state the user still sees on screen, so the
// same source menu keeps working after a failed edit.
func (s *conversationService) restoreSession(ctx context.Context, previous model.Session, cause error) error {
	previous.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, previous); err != nil {
		logger.Warn("session restore failed", "module", "service", "action", "restore", "resource", "session", "result", "failed", "chat_id", previous.ChatID, "error", err)
	}
	return cause
}

func (s *conversationService) selectTarget(ctx context.Context, session model.Session, lang model.Language, ev CallbackEvent) error {
	session.TargetLanguage = lang
	session.State = model.SessionDone
	if err := s.messenger.AnswerCallback(ctx, ev.QueryID, ""); err != nil {
		return err
	}

	job, submitErr := s.jobs.Submit(ctx, JobRequest{
		ChatID:   session.ChatID,
		FileID:   session.FileID,
		FileName: session.FileName,
		Source:   session.SourceLanguage,
		Target:   session.TargetLanguage,
	})

	// The selection is finished either way; a failed submit starts over from a new upload.
	if err := s.sessions.Delete(ctx, session.ChatID); err != nil {
		logger.Warn("session delete failed", "module", "service", "action", "delete", "resource", "session", "result", "failed", "chat_id", session.ChatID, "error", err)
	}

	if submitErr != nil {
		if err := s.messenger.EditText(ctx, ev.ChatID, session.PromptMessageID, SubmitFailedText); err != nil {
			logger.Warn("failure notice not sent", "module", "service", "action", "notify", "resource", "conversation", "result", "failed", "chat_id", ev.ChatID, "error", err)
		}
		return fmt.Errorf("submit job: %w", submitErr)
	}

	return s.messenger.EditText(ctx, ev.ChatID, session.PromptMessageID, fmt.Sprintf(QueuedTextFormat, job.FileURL))
}

func (s *conversationService) ExpireSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: ttl must be positive", ErrInvalid)
	}
	return s.sessions.DeleteStale(ctx, s.now().Add(-ttl))
}

// acceptsCallback checks the button press against the session's explicit
// stage and, when known, the message that carried the menu.
func acceptsCallback(session *model.Session, stage string, messageID int64) bool {
	if session == nil {
		return false
	}
	if session.PromptMessageID != 0 && messageID != 0 && session.PromptMessageID != messageID {
		return false
	}
	switch stage {
	case callbackSource:
		return session.State == model.SessionAwaitingSource
	case callbackTarget:
		return session.State == model.SessionAwaitingTarget && session.SourceLanguage != ""
	default:
		return false
	}
}

// parseCallbackData splits "src:fr" / "dst:en".
func parseCallbackData(data string) (string, model.Language, bool) {
	stage, code, found := strings.Cut(strings.TrimSpace(data), ":")
	if !found || (stage != callbackSource && stage != callbackTarget) {
		return "", "", false
	}
	lang, err := model.ParseLanguage(code)
	if err != nil || string(lang) != code {
		return "", "", false
	}
	return stage, lang, true
}

// languageMenu lists one language per row; preferred, when supported, goes first.
func languageMenu(stage string, preferred model.Language) Menu {
	menu := make(Menu, 0, len(model.SupportedLanguages))
	if preferred != "" {
		menu = append(menu, []MenuButton{{Label: preferred.Label(), Data: stage + ":" + preferred.String()}})
	}
	for _, lang := range model.SupportedLanguages {
		if lang == preferred {
			continue
		}
		menu = append(menu, []MenuButton{{Label: lang.Label(), Data: stage + ":" + lang.String()}})
	}
	return menu
}

// detectCaptionLanguage guesses the document language from its caption.
// Short or ambiguous captions give no hint.
func detectCaptionLanguage(caption string) model.Language {
	caption = strings.TrimSpace(caption)
	if utf8.RuneCountInString(caption) < minCaptionHintRune {
		return ""
	}
	info := whatlanggo.Detect(caption)
	if !info.IsReliable() {
		return ""
	}
	lang, err := model.ParseLanguage(info.Lang.Iso6391())
	if err != nil {
		return ""
	}
	return lang
}

func formatJobs(jobs []model.Job) string {
	if len(jobs) == 0 {
		return NoJobsText
	}
	var b strings.Builder
	b.WriteString("Your latest requests:")
	for _, job := range jobs {
		fmt.Fprintf(&b, "\n- %s -> %s [%s] %s",
			strings.ToUpper(job.SourceLanguage.String()),
			strings.ToUpper(job.TargetLanguage.String()),
			job.Status,
			job.FileURL,
		)
	}
	return b.String()
}
