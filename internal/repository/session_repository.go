package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"translatix/backend/internal/model"
)

//go:generate mockgen -source=session_repository.go -destination=mock/session_repository.go -package=mock

// SessionRepository persists the per-chat selection so that a restart does not lose it.
type SessionRepository interface {
	// Get returns nil when the chat has no session.
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Save(ctx context.Context, session model.Session) error
	Delete(ctx context.Context, chatID int64) error
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepository struct {
	db dbtx
}

func NewSessionRepository(db dbtx) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, state, file_id, file_name, source_language, target_language, prompt_message_id, updated_at
		FROM chat_sessions WHERE chat_id = ?
	`, chatID)

	var session model.Session
	var state string
	var fileID, fileName, source, target sql.NullString
	var promptID sql.NullInt64
	var updatedAt string
	if err := row.Scan(&session.ChatID, &state, &fileID, &fileName, &source, &target, &promptID, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	session.State = model.SessionState(state)
	session.FileID = fileID.String
	session.FileName = fileName.String
	session.SourceLanguage = model.Language(source.String)
	session.TargetLanguage = model.Language(target.String)
	session.PromptMessageID = promptID.Int64

	var err error
	session.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse session updated_at: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session model.Session) error {
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (chat_id, state, file_id, file_name, source_language, target_language, prompt_message_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			state = excluded.state,
			file_id = excluded.file_id,
			file_name = excluded.file_name,
			source_language = excluded.source_language,
			target_language = excluded.target_language,
			prompt_message_id = excluded.prompt_message_id,
			updated_at = excluded.updated_at
	`,
		session.ChatID,
		string(session.State),
		nullableString(session.FileID),
		nullableString(session.FileName),
		nullableString(string(session.SourceLanguage)),
		nullableString(string(session.TargetLanguage)),
		nullableInt64(session.PromptMessageID),
		formatTime(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, chatID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE updated_at < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count stale sessions: %w", err)
	}
	return n, nil
}
