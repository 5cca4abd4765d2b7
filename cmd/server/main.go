// ABOUTME: Main entry point for bookscout MCP server with stdio transport
// ABOUTME: Initializes storage, research engines, scheduler, and MCP server with all tools
package main

import (
	"log"

	"github.com/harper/bookscout/internal/charm"
	"github.com/harper/bookscout/internal/config"
	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/llm"
	"github.com/harper/bookscout/internal/mcp"
	"github.com/harper/bookscout/internal/storage"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - research, search, and extraction will not work")
	}

	kv, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		log.Fatalf("Failed to initialize charm storage: %v", err)
	}
	defer kv.Close()

	model, err := llm.NewClient(&llm.ClientConfig{
		APIKey:              cfg.OpenAIKey,
		SearchModel:         cfg.SearchModel,
		StructureModel:      cfg.StructureModel,
		EmbeddingModel:      openai.EmbeddingModel(cfg.EmbeddingModel),
		EmbeddingDimensions: cfg.VectorDimension,
		Timeout:             cfg.Timeout,
		MaxRetries:          cfg.MaxRetries,
		RetryDelay:          cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	taskStore := storage.NewTaskStore(kv)
	researchStore := storage.NewResearchStore(kv, cfg.VectorDimension)
	if err := researchStore.EnsureIndex(); err != nil {
		log.Fatalf("Failed to ensure vector index: %v", err)
	}

	researcher := core.NewResearcher(model)
	recommender := core.NewRecommender(model)
	extractor := core.NewExtractor(model)
	scheduler := core.NewScheduler(researcher, model, taskStore, researchStore, cfg.MaxConcurrentResearch)

	server := mcpserver.NewMCPServer(
		"Bookscout Research Service",
		"0.1.0",
	)

	handlers := mcp.RegisterTools(server, researcher, scheduler, recommender, extractor, model, taskStore, researchStore)

	log.Println("Bookscout MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	// Let in-flight background research finish before tearing down storage
	handlers.Shutdown()
}
