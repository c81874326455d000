package service

import "errors"

var (
	ErrInvalid = errors.New("invalid")
	ErrFetch   = errors.New("document fetch failed")
	ErrUpload  = errors.New("document upload failed")
	ErrRecord  = errors.New("job record failed")
)
