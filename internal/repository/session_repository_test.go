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

func TestSessionRepository_GetMissing(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))

	session, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	err := repo.Save(ctx, model.Session{
		ChatID:          42,
		State:           model.SessionAwaitingSource,
		FileID:          "F1",
		FileName:        "report.docx",
		PromptMessageID: 7,
	})
	require.NoError(t, err)

	session, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, model.SessionAwaitingSource, session.State)
	require.Equal(t, "F1", session.FileID)
	require.Equal(t, "report.docx", session.FileName)
	require.Equal(t, int64(7), session.PromptMessageID)
	require.Empty(t, session.SourceLanguage)
	require.False(t, session.UpdatedAt.IsZero())

	// Upsert overwrites the previous row for the chat.
	session.State = model.SessionAwaitingTarget
	session.SourceLanguage = model.LanguageFrench
	session.UpdatedAt = time.Time{}
	require.NoError(t, repo.Save(ctx, *session))

	updated, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, model.SessionAwaitingTarget, updated.State)
	require.Equal(t, model.LanguageFrench, updated.SourceLanguage)
	require.Equal(t, "F1", updated.FileID)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 1, State: model.SessionAwaitingSource, FileID: "F"}))
	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.Delete(ctx, 1))

	session, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionRepository_DeleteStale(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 1, State: model.SessionAwaitingSource, UpdatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 2, State: model.SessionAwaitingTarget, UpdatedAt: now}))

	deleted, err := repo.DeleteStale(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	gone, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, gone)

	kept, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestSessionRepository_DeleteStaleSubSecond(t *testing.T) {
	repo := repository.NewSessionRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 1, State: model.SessionAwaitingSource, UpdatedAt: base.Add(100 * time.Millisecond)}))
	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 2, State: model.SessionAwaitingSource, UpdatedAt: base}))
	require.NoError(t, repo.Save(ctx, model.Session{ChatID: 3, State: model.SessionAwaitingSource, UpdatedAt: base.Add(200 * time.Millisecond)}))

	deleted, err := repo.DeleteStale(ctx, base.Add(150*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	kept, err := repo.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, kept)
	require.True(t, kept.UpdatedAt.Equal(base.Add(200*time.Millisecond)))
}
