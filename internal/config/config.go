package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Environment
	Environment string `envconfig:"ENV" default:"development"`

	// Database (attendance ledger)
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Gallery
	GalleryPath  string `envconfig:"GALLERY_PATH" default:"data/gallery.bin"`
	EmbeddingDim int    `envconfig:"EMBEDDING_DIM" default:"128"`

	// Recognition
	DefaultThresholdPct float64 `envconfig:"DEFAULT_THRESHOLD_PCT" default:"70"`
	EnrollSampleCount   int     `envconfig:"ENROLL_SAMPLE_COUNT" default:"5"`
	TrendDays           int     `envconfig:"TREND_DAYS" default:"7"`

	// Provider
	ProviderType string `envconfig:"FACE_PROVIDER" default:"mock"`
	DeepFaceURL  string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
