// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "bookscout" {
		t.Errorf("CharmDBName = %s, want bookscout", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.SearchModel != "gpt-4o-search-preview" {
		t.Errorf("SearchModel = %s, want gpt-4o-search-preview", cfg.SearchModel)
	}
	if cfg.StructureModel != "gpt-4o-mini" {
		t.Errorf("StructureModel = %s, want gpt-4o-mini", cfg.StructureModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("VectorDimension = %d, want 768", cfg.VectorDimension)
	}
	if cfg.MaxConcurrentResearch != 4 {
		t.Errorf("MaxConcurrentResearch = %d, want 4", cfg.MaxConcurrentResearch)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("CHARM_HOST", "custom.charm.sh")
	os.Setenv("CHARM_DB", "test_db")
	os.Setenv("CHARM_AUTO_SYNC", "false")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("BOOKSCOUT_SEARCH_MODEL", "gpt-4o-mini-search-preview")
	os.Setenv("BOOKSCOUT_STRUCTURE_MODEL", "gpt-4o")
	os.Setenv("BOOKSCOUT_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("OPENAI_TIMEOUT", "90s")
	os.Setenv("OPENAI_MAX_RETRIES", "5")
	os.Setenv("OPENAI_RETRY_DELAY", "3s")
	os.Setenv("VECTOR_DIMENSION", "1536")
	os.Setenv("MAX_CONCURRENT_RESEARCH", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.CharmHost != "custom.charm.sh" {
		t.Errorf("CharmHost = %s, want custom.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "test_db" {
		t.Errorf("CharmDBName = %s, want test_db", cfg.CharmDBName)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.SearchModel != "gpt-4o-mini-search-preview" {
		t.Errorf("SearchModel = %s, want gpt-4o-mini-search-preview", cfg.SearchModel)
	}
	if cfg.StructureModel != "gpt-4o" {
		t.Errorf("StructureModel = %s, want gpt-4o", cfg.StructureModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.MaxConcurrentResearch != 8 {
		t.Errorf("MaxConcurrentResearch = %d, want 8", cfg.MaxConcurrentResearch)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero dimension", "VECTOR_DIMENSION", "0"},
		{"negative dimension", "VECTOR_DIMENSION", "-1"},
		{"too many retries", "OPENAI_MAX_RETRIES", "11"},
		{"negative retries", "OPENAI_MAX_RETRIES", "-1"},
		{"zero concurrency", "MAX_CONCURRENT_RESEARCH", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	// Unparseable values fall back to defaults instead of failing
	os.Clearenv()
	os.Setenv("VECTOR_DIMENSION", "not-a-number")
	os.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("VectorDimension = %d, want default 768", cfg.VectorDimension)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want default 60s", cfg.Timeout)
	}
}
