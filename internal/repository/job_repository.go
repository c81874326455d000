package repository

import (
	"context"
	"fmt"
	"time"

	"translatix/backend/internal/model"
	"translatix/backend/internal/snowflake"
)

//go:generate mockgen -source=job_repository.go -destination=mock/job_repository.go -package=mock

// JobRepository records translation requests. Rows are never updated here.
type JobRepository interface {
	Create(ctx context.Context, job model.Job) (model.Job, error)
	ListByChat(ctx context.Context, chatID int64, limit int) ([]model.Job, error)
}

type jobRepository struct {
	db dbtx
}

// NewJobRepository stores jobs in the local translation_jobs table.
func NewJobRepository(db dbtx) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job model.Job) (model.Job, error) {
	job.ID = snowflake.NextID()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO translation_jobs (id, chat_id, file_url, source_language, target_language, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.ChatID,
		job.FileURL,
		string(job.SourceLanguage),
		string(job.TargetLanguage),
		job.Status,
		formatTime(job.CreatedAt),
	)
	if err != nil {
		return model.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (r *jobRepository) ListByChat(ctx context.Context, chatID int64, limit int) ([]model.Job, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, file_url, source_language, target_language, status, created_at
		FROM translation_jobs WHERE chat_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		var source, target, createdAt string
		if err := rows.Scan(&job.ID, &job.ChatID, &job.FileURL, &source, &target, &job.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.SourceLanguage = model.Language(source)
		job.TargetLanguage = model.Language(target)
		job.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse job created_at: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}
