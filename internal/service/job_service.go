package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"translatix/backend/internal/logger"
	"translatix/backend/internal/media"
	"translatix/backend/internal/model"
	"translatix/backend/internal/repository"
)

//go:generate mockgen -source=job_service.go -destination=mock/job_service.go -package=mock

// JobRequest is a completed selection ready to be queued.
type JobRequest struct {
	ChatID   int64
	FileID   string
	FileName string
	Source   model.Language
	Target   model.Language
}

type JobService interface {
	// Submit downloads the document, uploads it to the media host and records
	// one Queued job. Nothing is recorded when the upload fails, and an upload
	// whose record insert fails is not removed.
	Submit(ctx context.Context, req JobRequest) (model.Job, error)
	ListByChat(ctx context.Context, chatID int64, limit int) ([]model.Job, error)
}

type jobService struct {
	files    FileFetcher
	uploader media.Uploader
	jobs     repository.JobRepository
}

func NewJobService(files FileFetcher, uploader media.Uploader, jobs repository.JobRepository) JobService {
	return &jobService{files: files, uploader: uploader, jobs: jobs}
}

func (s *jobService) Submit(ctx context.Context, req JobRequest) (model.Job, error) {
	if strings.TrimSpace(req.FileID) == "" {
		return model.Job{}, fmt.Errorf("%w: missing file reference", ErrInvalid)
	}
	source, err := model.ParseLanguage(string(req.Source))
	if err != nil {
		return model.Job{}, fmt.Errorf("%w: source language %q", ErrInvalid, req.Source)
	}
	target, err := model.ParseLanguage(string(req.Target))
	if err != nil {
		return model.Job{}, fmt.Errorf("%w: target language %q", ErrInvalid, req.Target)
	}

	localPath, err := s.files.Fetch(ctx, req.FileID, req.FileName)
	if err != nil {
		return model.Job{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("temp file cleanup failed", "module", "service", "action", "cleanup", "resource", "file", "result", "failed", "path", localPath, "error", err)
		}
	}()

	fileURL, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		logger.Error("document upload failed", "module", "service", "action", "upload", "resource", "job", "result", "failed", "chat_id", req.ChatID, "error", err)
		return model.Job{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	job, err := s.jobs.Create(ctx, model.Job{
		ChatID:         req.ChatID,
		FileURL:        fileURL,
		SourceLanguage: source,
		TargetLanguage: target,
		Status:         model.JobStatusQueued,
	})
	if err != nil {
		logger.Error("job record failed", "module", "service", "action", "create", "resource", "job", "result", "failed", "chat_id", req.ChatID, "file_url", fileURL, "error", err)
		return model.Job{}, fmt.Errorf("%w: %w", ErrRecord, err)
	}

	logger.Info("job queued", "module", "service", "action", "create", "resource", "job", "result", "ok",
		"chat_id", req.ChatID, "job_id", job.ID, "source", source, "target", target)
	return job, nil
}

func (s *jobService) ListByChat(ctx context.Context, chatID int64, limit int) ([]model.Job, error) {
	return s.jobs.ListByChat(ctx, chatID, limit)
}
