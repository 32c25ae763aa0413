package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

type Config struct {
	Extractor ExtractorConfig
	Matching  MatchingConfig
	Database  DatabaseConfig
	Models    ModelsConfig
}

type ExtractorConfig struct {
	URL   string // defaults to http://localhost:8000
	Model string // embedding model served by the extractor (default facenet)
	Dim   int    // embedding dimensionality (default 128 for Facenet)
}

type MatchingConfig struct {
	Threshold float64 // maximum L2 distance for a positive match
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MariaDBDSN   string // optional MariaDB DSN for MySQL-backed deployments
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// ModelsConfig maps extractor model names to their embedding profiles.
type ModelsConfig struct {
	Models map[string]ModelProfile `yaml:"models"`
}

// ModelProfile describes the embedding space of one extractor model.
type ModelProfile struct {
	Dim       int     `yaml:"dim"`
	Threshold float64 `yaml:"threshold"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var models ModelsConfig
	if err := yaml.Unmarshal(modelsYAML, &models); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded models.yaml: " + err.Error())
	}

	model := os.Getenv("EXTRACTOR_MODEL")
	if model == "" {
		model = "facenet"
	}
	profile := models.Profile(model)

	return &Config{
		Extractor: ExtractorConfig{
			URL:   os.Getenv("EXTRACTOR_URL"),
			Model: model,
			Dim:   envInt("EXTRACTOR_DIM", profile.Dim),
		},
		Matching: MatchingConfig{
			Threshold: envFloat("MATCH_THRESHOLD", profile.Threshold),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MariaDBDSN:   os.Getenv("MARIADB_DSN"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Models: models,
	}
}

// Profile returns the embedding profile for a model, falling back to the
// facenet defaults when the model is not listed.
func (c *ModelsConfig) Profile(model string) ModelProfile {
	if p, ok := c.Models[model]; ok {
		return p
	}
	return ModelProfile{Dim: 128, Threshold: 10.0}
}
