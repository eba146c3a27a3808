package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by Load. They override values from the config file.
const (
	EnvReferencePrefix = "FIGREF_REFERENCE_PREFIX"
	EnvCaptionLabel    = "FIGREF_CAPTION_LABEL"
	EnvLogLevel        = "FIGREF_LOG_LEVEL"
	EnvLogFormat       = "FIGREF_LOG_FORMAT"
	EnvMetricsTextfile = "FIGREF_METRICS_TEXTFILE"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// It stops at the first file that loads. Existing process environment
// variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvReferencePrefix); v != "" {
		cfg.ReferencePrefix = v
	}
	if v := os.Getenv(EnvCaptionLabel); v != "" {
		cfg.CaptionLabel = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = LogFormat(v)
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		cfg.Metrics.Textfile = v
	}
}
