// Package config centralizes how CivicPulse reads environment variables and
// exposes them as strongly typed Go values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration for the service.
type Config struct {
	Address         string
	DataFile        string
	UploadDir       string
	AdminPhonesFile string
	MaxUploadBytes  int64
	AllowedOrigins  []string
	ProcessingPool  int

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	VisionModel     string
	ClassifyTimeout time.Duration

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3Region        string
	S3UseSSL        bool
	S3PublicBaseURL string
}

const (
	defaultAddress         = ":4000"
	defaultDataFile        = "data/complaints.json"
	defaultUploadDir       = "uploads"
	defaultAdminPhonesFile = "data/admin_phones.json"
	defaultMaxUploadBytes  = 10 << 20 // 10 MiB
	defaultWorkerCount     = 2
	defaultClassifyTimeout = 30 * time.Second
	defaultS3Bucket        = "civicpulse-images"
)

// Load reads configuration from environment variables falling back to
// defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Address:         readEnv("CIVICPULSE_ADDRESS", defaultAddress),
		DataFile:        readEnv("CIVICPULSE_DATA_FILE", defaultDataFile),
		UploadDir:       readEnv("CIVICPULSE_UPLOAD_DIR", defaultUploadDir),
		AdminPhonesFile: readEnv("CIVICPULSE_ADMIN_PHONES_FILE", defaultAdminPhonesFile),
		MaxUploadBytes:  parseInt64("CIVICPULSE_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		AllowedOrigins:  parseList("CIVICPULSE_ALLOWED_ORIGINS", ""),
		ProcessingPool:  parseInt("CIVICPULSE_WORKERS", defaultWorkerCount),
		OpenAIAPIKey:    readEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   readEnv("OPENAI_BASE_URL", ""),
		VisionModel:     readEnv("CIVICPULSE_VISION_MODEL", ""),
		ClassifyTimeout: parseDuration("CIVICPULSE_CLASSIFY_TIMEOUT", defaultClassifyTimeout),
		DatabaseURL:     readEnv("DATABASE_URL", ""),
		RedisAddr:       readEnv("REDIS_ADDR", ""),
		RedisPassword:   readEnv("REDIS_PASSWORD", ""),
		RedisDB:         parseInt("REDIS_DB", 0),
		S3Endpoint:      readEnv("S3_ENDPOINT", ""),
		S3AccessKey:     readEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     readEnv("S3_SECRET_KEY", ""),
		S3Bucket:        readEnv("S3_BUCKET", defaultS3Bucket),
		S3Region:        readEnv("S3_REGION", ""),
		S3UseSSL:        parseBool("S3_USE_SSL", false),
		S3PublicBaseURL: readEnv("S3_PUBLIC_BASE_URL", ""),
	}
	if cfg.ProcessingPool <= 0 {
		cfg.ProcessingPool = defaultWorkerCount
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = defaultClassifyTimeout
	}
	return cfg, nil
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// parseList splits a comma-separated value; an empty value yields an empty
// slice, not a one-element slice holding "".
func parseList(key, def string) []string {
	val := readEnv(key, def)
	if strings.TrimSpace(val) == "" {
		return nil
	}
	out := strings.Split(val, ",")
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

func parseInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
