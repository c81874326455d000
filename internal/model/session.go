package model

import "time"

// SessionState is the stage of an in-progress document submission.
type SessionState string

const (
	SessionAwaitingDocument SessionState = "awaiting_document"
	SessionAwaitingSource   SessionState = "awaiting_source"
	SessionAwaitingTarget   SessionState = "awaiting_target"
	SessionDone             SessionState = "done"
)

// Session is the per-chat selection collected before a job is recorded.
type Session struct {
	ChatID          int64
	State           SessionState
	FileID          string
	FileName        string
	SourceLanguage  Language
	TargetLanguage  Language
	PromptMessageID int64
	UpdatedAt       time.Time
}

// NewSession returns the empty state for a chat that has not sent a document yet.
func NewSession(chatID int64) Session {
	return Session{ChatID: chatID, State: SessionAwaitingDocument}
}
