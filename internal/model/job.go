package model

import "time"

// JobStatusQueued is the only status written by this service. Workers elsewhere move it forward.
const JobStatusQueued = "Queued"

// WordDocumentMIME is the only attachment type accepted for translation.
const WordDocumentMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type Job struct {
	ID             int64
	ChatID         int64
	FileURL        string
	SourceLanguage Language
	TargetLanguage Language
	Status         string
	CreatedAt      time.Time
}
