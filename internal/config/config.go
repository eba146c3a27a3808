package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"git.home.luguber.info/inful/figref/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Default values applied when neither the file, the environment nor flags set a field.
const (
	DefaultReferencePrefix = "#fig"
	DefaultCaptionLabel    = "Figure"
)

// Config represents the filter configuration.
type Config struct {
	// ReferencePrefix marks a link target as a figure reference.
	ReferencePrefix string `yaml:"reference_prefix"`
	// CaptionLabel is the word put before figure numbers ("Figure 1: ...", "Figure 1").
	CaptionLabel string        `yaml:"caption_label"`
	Logging      LoggingConfig `yaml:"logging"`
	Metrics      MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls metrics output.
type MetricsConfig struct {
	// Textfile, when set, receives the run's metrics in Prometheus text format.
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load builds the configuration from .env files, the optional YAML file at
// configPath and FIGREF_* environment variables, in increasing precedence.
// An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case.
	_ = loadEnvFile()

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.ReferencePrefix == "" {
		cfg.ReferencePrefix = DefaultReferencePrefix
	}
	if cfg.CaptionLabel == "" {
		cfg.CaptionLabel = DefaultCaptionLabel
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
