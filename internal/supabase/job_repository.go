// Package supabase records translation jobs in a Supabase table through its PostgREST API.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"translatix/backend/internal/logger"
	"translatix/backend/internal/model"
	"translatix/backend/internal/repository"
)

// row mirrors the columns of the jobs table shared with the translation worker.
type row struct {
	ID               int64  `json:"id,omitempty"`
	ChatID           int64  `json:"id_telegram"`
	FileURL          string `json:"file_url"`
	OriginalLanguage string `json:"original_language"`
	ConvertTo        string `json:"convert_to"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at,omitempty"`
}

type jobRepository struct {
	client *postgrest.Client
	table  string
}

// NewJobRepository returns a JobRepository backed by <baseURL>/rest/v1/<table>.
func NewJobRepository(baseURL, key, table string) (repository.JobRepository, error) {
	restURL := strings.TrimRight(baseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("init postgrest client: %w", client.ClientError)
	}
	return &jobRepository{client: client, table: table}, nil
}

// Create inserts one row. Once PostgREST accepts the insert the job counts as
// recorded: an unreadable representation is logged and the request's fields
// are returned, so the user is not told to resend a document that is queued.
func (r *jobRepository) Create(ctx context.Context, job model.Job) (model.Job, error) {
	if err := ctx.Err(); err != nil {
		return model.Job{}, err
	}

	body, _, err := r.client.From(r.table).
		Insert(row{
			ChatID:           job.ChatID,
			FileURL:          job.FileURL,
			OriginalLanguage: string(job.SourceLanguage),
			ConvertTo:        string(job.TargetLanguage),
			Status:           job.Status,
		}, false, "", "representation", "").
		Execute()
	if err != nil {
		return model.Job{}, fmt.Errorf("insert job: %w", err)
	}

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	var created []row
	if err := json.Unmarshal(body, &created); err != nil {
		logger.Warn("job representation unreadable", "module", "supabase", "action", "create", "resource", "job", "result", "partial", "chat_id", job.ChatID, "error", err)
		return job, nil
	}
	if len(created) == 0 {
		return job, nil
	}
	return created[0].toModel(), nil
}

func (r *jobRepository) ListByChat(ctx context.Context, chatID int64, limit int) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	var rows []row
	_, err := r.client.From(r.table).
		Select("*", "", false).
		Eq("id_telegram", strconv.FormatInt(chatID, 10)).
		Order("id", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, rr := range rows {
		jobs = append(jobs, rr.toModel())
	}
	return jobs, nil
}

func (rr row) toModel() model.Job {
	job := model.Job{
		ID:             rr.ID,
		ChatID:         rr.ChatID,
		FileURL:        rr.FileURL,
		SourceLanguage: model.Language(rr.OriginalLanguage),
		TargetLanguage: model.Language(rr.ConvertTo),
		Status:         rr.Status,
	}
	if rr.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, rr.CreatedAt); err == nil {
			job.CreatedAt = t
		}
	}
	return job
}
