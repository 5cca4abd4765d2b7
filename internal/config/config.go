// ABOUTME: Centralized configuration for the bookscout research service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the research service
type Config struct {
	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	SearchModel    string
	StructureModel string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Research settings
	VectorDimension       int
	MaxConcurrentResearch int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		CharmHost:             getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:           getEnv("CHARM_DB", "bookscout"),
		AutoSync:              getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:             os.Getenv("OPENAI_API_KEY"),
		SearchModel:           getEnv("BOOKSCOUT_SEARCH_MODEL", "gpt-4o-search-preview"),
		StructureModel:        getEnv("BOOKSCOUT_STRUCTURE_MODEL", "gpt-4o-mini"),
		EmbeddingModel:        getEnv("BOOKSCOUT_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:               getEnvDuration("OPENAI_TIMEOUT", 60*time.Second),
		MaxRetries:            getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:            getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		VectorDimension:       getEnvInt("VECTOR_DIMENSION", 768),
		MaxConcurrentResearch: getEnvInt("MAX_CONCURRENT_RESEARCH", 4),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxConcurrentResearch < 1 {
		return fmt.Errorf("MAX_CONCURRENT_RESEARCH must be at least 1, got %d", c.MaxConcurrentResearch)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
