// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use bookscout via stdio
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs bookscout as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to research, search, and recommend books via
stdio.

Configure in Claude Desktop's config file to enable the book tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  bookscout mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "bookscout": {
  #       "command": "bookscout",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if svc.cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - research, search, and extraction will not work")
	}

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	researcher := core.NewResearcher(model)
	recommender := core.NewRecommender(model)
	extractor := core.NewExtractor(model)
	scheduler := core.NewScheduler(researcher, model, svc.tasks, svc.research, svc.cfg.MaxConcurrentResearch)
	if verbose {
		log.Printf("Research concurrency capped at %d", svc.cfg.MaxConcurrentResearch)
	}

	server := mcpserver.NewMCPServer(
		"Bookscout Research Service",
		versionInfo.Version,
	)

	handlers := mcp.RegisterTools(server, researcher, scheduler, recommender, extractor, model, svc.tasks, svc.research)

	if !quiet {
		log.Println("Bookscout MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	// Let in-flight background research finish before closing storage
	handlers.Shutdown()
	return nil
}
