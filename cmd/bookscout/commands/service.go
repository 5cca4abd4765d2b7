// ABOUTME: Shared service bootstrap for CLI commands
// ABOUTME: Opens charm storage and the OpenAI client from environment configuration
package commands

import (
	"fmt"

	"github.com/harper/bookscout/internal/charm"
	"github.com/harper/bookscout/internal/config"
	"github.com/harper/bookscout/internal/llm"
	"github.com/harper/bookscout/internal/storage"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

// service bundles the stores every command needs. The LLM client is built
// lazily so storage-only commands work without an API key.
type service struct {
	cfg      *config.Config
	kv       *charm.Client
	tasks    *storage.TaskStore
	research *storage.ResearchStore
}

// openService loads config and opens the charm-backed stores
func openService() (*service, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	kv, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("opening charm storage: %w", err)
	}

	research := storage.NewResearchStore(kv, cfg.VectorDimension)
	if err := research.EnsureIndex(); err != nil {
		kv.Close()
		return nil, fmt.Errorf("ensuring vector index: %w", err)
	}

	return &service{
		cfg:      cfg,
		kv:       kv,
		tasks:    storage.NewTaskStore(kv),
		research: research,
	}, nil
}

// Close releases the underlying KV database
func (s *service) Close() error {
	return s.kv.Close()
}

// Model builds the OpenAI client; fails if OPENAI_API_KEY is unset
func (s *service) Model() (*llm.Client, error) {
	return llm.NewClient(&llm.ClientConfig{
		APIKey:              s.cfg.OpenAIKey,
		SearchModel:         s.cfg.SearchModel,
		StructureModel:      s.cfg.StructureModel,
		EmbeddingModel:      openai.EmbeddingModel(s.cfg.EmbeddingModel),
		EmbeddingDimensions: s.cfg.VectorDimension,
		Timeout:             s.cfg.Timeout,
		MaxRetries:          s.cfg.MaxRetries,
		RetryDelay:          s.cfg.RetryDelay,
	})
}
