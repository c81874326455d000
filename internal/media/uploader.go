// Package media uploads retrieved documents to a public media host.
package media

import (
	"context"
	"errors"
)

// ErrEmptyURL is returned when the host accepted the upload but reported no URL.
var ErrEmptyURL = errors.New("media host returned no url")

// Uploader sends a local file to the media host and returns its public URL.
// Implementations make a single attempt; failures are returned as-is.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
