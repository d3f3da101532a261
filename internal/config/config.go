// Package config loads the cdsctl configuration: a YAML file overlaid with
// CDSCORE_* environment variables, environment winning.
package config

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Config selects the persistence and attachment backends plus logging.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Blob    BlobConfig    `yaml:"blob"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects the node store backend.
type StoreConfig struct {
	// Driver is memory, sqlite or postgres.
	Driver string `yaml:"driver"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`
}

// BlobConfig selects the attachment backend.
type BlobConfig struct {
	// Driver is memory, fs or s3.
	Driver string `yaml:"driver"`
	// FSRoot is the attachment directory for the fs driver.
	FSRoot string `yaml:"fs_root"`
	// BaseURL joins with attachment keys when the backend cannot presign.
	BaseURL string `yaml:"base_url"`
	// S3 configures the s3 driver.
	S3 S3Config `yaml:"s3"`
}

// S3Config configures the s3 attachment driver.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	PathStyle       bool   `yaml:"path_style"`
}

// LoggingConfig selects log verbosity and output encoding.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file or environment is
// present: everything in process, text logging at info.
func Default() Config {
	return Config{
		Store:   StoreConfig{Driver: "memory"},
		Blob:    BlobConfig{Driver: "memory"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load builds the effective configuration. path may be empty; a named file
// must exist and parse. Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Store.Driver, "CDSCORE_STORE_DRIVER")
	setString(&cfg.Store.Path, "CDSCORE_STORE_PATH")
	setString(&cfg.Store.DSN, "CDSCORE_STORE_DSN")
	setString(&cfg.Blob.Driver, "CDSCORE_BLOB_DRIVER")
	setString(&cfg.Blob.FSRoot, "CDSCORE_BLOB_FS_ROOT")
	setString(&cfg.Blob.BaseURL, "CDSCORE_BLOB_BASE_URL")
	setString(&cfg.Blob.S3.Bucket, "CDSCORE_BLOB_S3_BUCKET")
	setString(&cfg.Blob.S3.Region, "CDSCORE_BLOB_S3_REGION")
	setString(&cfg.Blob.S3.Endpoint, "CDSCORE_BLOB_S3_ENDPOINT")
	setString(&cfg.Logging.Level, "CDSCORE_LOG_LEVEL")
	setString(&cfg.Logging.Format, "CDSCORE_LOG_FORMAT")
	if v := os.Getenv("CDSCORE_BLOB_S3_PATH_STYLE"); v != "" {
		cfg.Blob.S3.PathStyle = strings.EqualFold(v, "true")
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Blob.Driver {
	case "memory", "fs", "s3":
	default:
		return fmt.Errorf("unknown blob driver %q", c.Blob.Driver)
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("sqlite store requires a path")
	}
	return nil
}
