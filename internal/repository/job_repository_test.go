package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"translatix/backend/internal/model"
	"translatix/backend/internal/repository"
	"translatix/backend/internal/repository/testutil"
)

func TestJobRepository_CreateAndList(t *testing.T) {
	repo := repository.NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Job{
		ChatID:         42,
		FileURL:        "https://cdn.example.com/f1.docx",
		SourceLanguage: model.LanguageFrench,
		TargetLanguage: model.LanguageEnglish,
		Status:         model.JobStatusQueued,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	jobs, err := repo.ListByChat(ctx, 42, 5)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, created.ID, jobs[0].ID)
	require.Equal(t, "https://cdn.example.com/f1.docx", jobs[0].FileURL)
	require.Equal(t, model.LanguageFrench, jobs[0].SourceLanguage)
	require.Equal(t, model.LanguageEnglish, jobs[0].TargetLanguage)
	require.Equal(t, model.JobStatusQueued, jobs[0].Status)

	other, err := repo.ListByChat(ctx, 99, 5)
	require.NoError(t, err)
	require.Empty(t, other)
}

// Submitting the same file twice yields two independent rows.
func TestJobRepository_NoDuplicateCheck(t *testing.T) {
	repo := repository.NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	job := model.Job{
		ChatID:         1,
		FileURL:        "https://cdn.example.com/same.docx",
		SourceLanguage: model.LanguageArabic,
		TargetLanguage: model.LanguageArabic,
		Status:         model.JobStatusQueued,
	}
	first, err := repo.Create(ctx, job)
	require.NoError(t, err)
	second, err := repo.Create(ctx, job)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	jobs, err := repo.ListByChat(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
}

func TestJobRepository_ListNewestFirstWithLimit(t *testing.T) {
	repo := repository.NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, model.Job{
			ChatID:         5,
			FileURL:        "https://cdn.example.com/" + string(rune('a'+i)),
			SourceLanguage: model.LanguageEnglish,
			TargetLanguage: model.LanguageSpanish,
			Status:         model.JobStatusQueued,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	jobs, err := repo.ListByChat(ctx, 5, 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "https://cdn.example.com/c", jobs[0].FileURL)
	require.Equal(t, "https://cdn.example.com/b", jobs[1].FileURL)
}

func TestJobRepository_ListOrdersSubSecondTimes(t *testing.T) {
	repo := repository.NewJobRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		url    string
		offset time.Duration
	}{
		{"https://cdn.example.com/whole-second", 0},
		{"https://cdn.example.com/newest", 150 * time.Millisecond},
		{"https://cdn.example.com/middle", 100 * time.Millisecond},
	} {
		_, err := repo.Create(ctx, model.Job{
			ChatID:         8,
			FileURL:        tc.url,
			SourceLanguage: model.LanguageEnglish,
			TargetLanguage: model.LanguageFrench,
			Status:         model.JobStatusQueued,
			CreatedAt:      base.Add(tc.offset),
		})
		require.NoError(t, err)
	}

	jobs, err := repo.ListByChat(ctx, 8, 5)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	require.Equal(t, "https://cdn.example.com/newest", jobs[0].FileURL)
	require.Equal(t, "https://cdn.example.com/middle", jobs[1].FileURL)
	require.Equal(t, "https://cdn.example.com/whole-second", jobs[2].FileURL)
	require.True(t, jobs[0].CreatedAt.Equal(base.Add(150*time.Millisecond)))
}
