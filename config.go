package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/session"
)

const defaultAddr = "0.0.0.0:8080"

// Config is read from MG_* environment variables at startup.
type Config struct {
	Addr        string
	BaseURL     string
	DBPath      string
	CatalogPath string
	ImageDir    string
	S3Bucket    string
	AWSProfile  string

	SubmitDelay time.Duration
	ResetDelay  time.Duration
	SessionTTL  time.Duration

	LogLevel slog.Level
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func loadConfig() (*Config, error) {
	cfg := &Config{
		Addr:        getenv("MG_ADDR", defaultAddr),
		BaseURL:     os.Getenv("MG_BASE_URL"),
		DBPath:      os.Getenv("MG_DB_PATH"),
		CatalogPath: os.Getenv("MG_CATALOG"),
		ImageDir:    os.Getenv("MG_IMAGE_DIR"),
		S3Bucket:    os.Getenv("MG_S3_BUCKET"),
		AWSProfile:  os.Getenv("MG_AWS_PROFILE"),
	}

	var err error
	if cfg.SubmitDelay, err = durationEnv("MG_SUBMIT_DELAY", contact.DefaultSubmitDelay); err != nil {
		return nil, err
	}
	if cfg.ResetDelay, err = durationEnv("MG_RESET_DELAY", contact.DefaultResetDelay); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationEnv("MG_SESSION_TTL", session.DefaultTTL); err != nil {
		return nil, err
	}

	if v := os.Getenv("MG_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid MG_LOG_LEVEL %q: %w", v, err)
		}
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid MG_BASE_URL %q: must be an absolute http(s) url", cfg.BaseURL)
		}
	}

	if cfg.S3Bucket != "" && cfg.ImageDir == "" {
		return nil, fmt.Errorf("MG_IMAGE_DIR is required when MG_S3_BUCKET is set")
	}
	return cfg, nil
}
