package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"translatix/backend/internal/logger"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader uploads with resource type "auto" so that the host
// decides between image, video and raw storage.
type CloudinaryUploader struct {
	api cloudinaryAPI
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{api: &cld.Upload}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (string, error) {
	resp, err := u.api.Upload(ctx, localPath, uploader.UploadParams{ResourceType: "auto"})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyURL
	}
	if msg := strings.TrimSpace(resp.Error.Message); msg != "" {
		return "", fmt.Errorf("cloudinary upload: %s", msg)
	}

	fileURL := resp.SecureURL
	if fileURL == "" {
		fileURL = resp.URL
	}
	if fileURL == "" {
		return "", ErrEmptyURL
	}

	logger.Info("document uploaded",
		"module", "media",
		"action", "upload",
		"resource", "cloudinary",
		"result", "ok",
		"public_id", resp.PublicID,
		"bytes", resp.Bytes,
	)
	return fileURL, nil
}
