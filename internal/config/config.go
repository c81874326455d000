package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName    = "Translatix"
	AppVersion = "1.0.0"
)

const (
	MediaBackendCloudinary = "cloudinary"
	MediaBackendS3         = "s3"

	JobStoreSupabase = "supabase"
	JobStoreSQLite   = "sqlite"
)

const (
	DefaultTelegramAPIBase = "https://api.telegram.org"
	DefaultWebhookPath     = "/telegram/webhook"
	DefaultSupabaseTable   = "translatix"
)

// MissingEnvError lists every required variable that was empty at startup.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment: " + strings.Join(e.Keys, ", ")
}

// InvalidEnvError lists every variable whose value could not be parsed.
type InvalidEnvError struct {
	Problems []string
}

func (e *InvalidEnvError) Error() string {
	return "invalid environment: " + strings.Join(e.Problems, "; ")
}

type TelegramConfig struct {
	Token         string
	APIBase       string
	WebhookURL    string
	WebhookPath   string
	WebhookSecret string
	PollTimeout   time.Duration
	RateLimit     int
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

type Config struct {
	Addr         string
	DataDir      string
	DBPath       string
	LogLevel     string
	ProxyURL     string
	SnowflakeID  int64
	SessionTTL   time.Duration
	MediaBackend string
	JobStore     string

	Telegram   TelegramConfig
	Cloudinary CloudinaryConfig
	S3         S3Config
	Supabase   SupabaseConfig
}

// LoadEnvFile merges KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment. Missing secrets for the
// selected backends are reported together in a *MissingEnvError.
func Load() (Config, error) {
	env := &envReader{}
	dataDir := get("TRANSLATIX_DATA_DIR", "./data")
	dbPath := get("TRANSLATIX_DB_PATH", filepath.Join(dataDir, "translatix.db"))

	cfg := Config{
		Addr:         get("TRANSLATIX_ADDR", ":8080"),
		DataDir:      filepath.Clean(dataDir),
		DBPath:       filepath.Clean(dbPath),
		LogLevel:     get("LOG_LEVEL", "info"),
		ProxyURL:     strings.TrimSpace(os.Getenv("HTTP_PROXY_URL")),
		SnowflakeID:  int64(env.getInt("SNOWFLAKE_NODE", 1)),
		SessionTTL:   env.getDuration("SESSION_TTL", 24*time.Hour),
		MediaBackend: strings.ToLower(get("MEDIA_BACKEND", MediaBackendCloudinary)),
		JobStore:     strings.ToLower(get("JOB_STORE", JobStoreSupabase)),
		Telegram: TelegramConfig{
			Token:         strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
			APIBase:       strings.TrimRight(get("TELEGRAM_API_BASE", DefaultTelegramAPIBase), "/"),
			WebhookURL:    strings.TrimSpace(os.Getenv("TELEGRAM_WEBHOOK_URL")),
			WebhookPath:   get("TELEGRAM_WEBHOOK_PATH", DefaultWebhookPath),
			WebhookSecret: strings.TrimSpace(os.Getenv("TELEGRAM_WEBHOOK_SECRET")),
			PollTimeout:   env.getDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),
			RateLimit:     env.getInt("TELEGRAM_RATE_LIMIT", 25),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME")),
			APIKey:    strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY")),
			APISecret: strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET")),
		},
		S3: S3Config{
			Region:        get("AWS_REGION", "us-east-1"),
			Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Prefix:        strings.Trim(get("S3_PREFIX", "uploads"), "/"),
			PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")), "/"),
		},
		Supabase: SupabaseConfig{
			URL:   strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
			Key:   strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
			Table: get("SUPABASE_TABLE", DefaultSupabaseTable),
		},
	}

	if len(env.problems) > 0 {
		return Config{}, &InvalidEnvError{Problems: env.problems}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend names and that every secret the selected backends need is present.
func (c Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	require("TELEGRAM_TOKEN", c.Telegram.Token)

	switch c.MediaBackend {
	case MediaBackendCloudinary:
		require("CLOUDINARY_CLOUD_NAME", c.Cloudinary.CloudName)
		require("CLOUDINARY_API_KEY", c.Cloudinary.APIKey)
		require("CLOUDINARY_API_SECRET", c.Cloudinary.APISecret)
	case MediaBackendS3:
		require("S3_BUCKET", c.S3.Bucket)
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.MediaBackend)
	}

	switch c.JobStore {
	case JobStoreSupabase:
		require("SUPABASE_URL", c.Supabase.URL)
		require("SUPABASE_KEY", c.Supabase.Key)
	case JobStoreSQLite:
	default:
		return fmt.Errorf("unknown JOB_STORE %q", c.JobStore)
	}

	if c.SnowflakeID < 0 || c.SnowflakeID > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be within 0-1023, got %d", c.SnowflakeID)
	}

	if len(missing) > 0 {
		return &MissingEnvError{Keys: missing}
	}
	return nil
}

func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envReader parses optional numeric variables and collects every malformed value.
type envReader struct {
	problems []string
}

func (r *envReader) invalid(key, value, want string) {
	r.problems = append(r.problems, fmt.Sprintf("%s=%q is not %s", key, value, want))
}

func (r *envReader) getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.invalid(key, v, "an integer")
		return def
	}
	return n
}

// getDuration accepts Go duration strings ("90s", "24h") or a bare number of seconds.
func (r *envReader) getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	r.invalid(key, v, "a positive duration")
	return def
}
