package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"translatix/backend/internal/logger"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores documents under <prefix>/<uuid>/<name> in one bucket.
type S3Uploader struct {
	api           s3API
	bucket        string
	region        string
	prefix        string
	publicBaseURL string
}

type S3Options struct {
	Region string
	Bucket string
	Prefix string
	// PublicBaseURL replaces the virtual-hosted bucket URL, e.g. a CDN in front of the bucket.
	PublicBaseURL string
}

// NewS3Uploader loads the default AWS credential chain. AWS_ENDPOINT_URL, when
// set, points the client at an S3-compatible endpoint such as localstack.
func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(os.Getenv("AWS_ENDPOINT_URL"))
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	if opts.PublicBaseURL == "" && endpoint != "" {
		opts.PublicBaseURL = strings.TrimRight(endpoint, "/") + "/" + opts.Bucket
	}
	return newS3Uploader(client, opts), nil
}

func newS3Uploader(api s3API, opts S3Options) *S3Uploader {
	return &S3Uploader{
		api:           api,
		bucket:        opts.Bucket,
		region:        opts.Region,
		prefix:        strings.Trim(opts.Prefix, "/"),
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := u.objectKey(filepath.Base(localPath))
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	logger.Info("document uploaded",
		"module", "media",
		"action", "upload",
		"resource", "s3",
		"result", "ok",
		"bucket", u.bucket,
		"key", key,
	)
	return u.publicURL(key), nil
}

func (u *S3Uploader) objectKey(name string) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return path.Join(u.prefix, uuid.NewString(), name)
}

func (u *S3Uploader) publicURL(key string) string {
	if u.publicBaseURL != "" {
		return u.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
