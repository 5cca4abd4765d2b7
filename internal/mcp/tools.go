// ABOUTME: MCP tool definitions and registration for the bookscout server
// ABOUTME: Maps the research, task, store, search, recommend, and extract operations to tools
package mcp

import (
	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, researcher *core.Researcher, scheduler *core.Scheduler, recommender *core.Recommender, extractor *core.Extractor, embedder core.Embedder, tasks *storage.TaskStore, research *storage.ResearchStore) *Handlers {
	handlers := &Handlers{
		researcher:  researcher,
		scheduler:   scheduler,
		recommender: recommender,
		extractor:   extractor,
		embedder:    embedder,
		tasks:       tasks,
		research:    research,
	}

	server.AddTool(mcp.Tool{
		Name:        "research_book",
		Description: "Research a single book synchronously and return the structured result without persisting it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Book title to research",
				},
				"other_info": map[string]interface{}{
					"type":        "string",
					"description": "Optional disambiguating information (author, year, etc.)",
				},
			},
			Required: []string{"title"},
		},
	}, handlers.ResearchBook)

	server.AddTool(mcp.Tool{
		Name:        "research_and_store",
		Description: "Research a single book synchronously, embed the result, and persist it to the research store.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Book title to research",
				},
				"other_info": map[string]interface{}{
					"type":        "string",
					"description": "Optional disambiguating information (author, year, etc.)",
				},
			},
			Required: []string{"title"},
		},
	}, handlers.ResearchAndStore)

	server.AddTool(mcp.Tool{
		Name:        "research_books_async",
		Description: "Submit a batch of books for background research. Returns the created task records immediately; poll task status for completion.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"books": map[string]interface{}{
					"type":        "array",
					"description": "Books to research",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"title": map[string]interface{}{
								"type":        "string",
								"description": "Book title to research",
							},
							"other_info": map[string]interface{}{
								"type":        "string",
								"description": "Optional disambiguating information",
							},
						},
						"required": []string{"title"},
					},
				},
			},
			Required: []string{"books"},
		},
	}, handlers.ResearchBooksAsync)

	server.AddTool(mcp.Tool{
		Name:        "get_research_task",
		Description: "Get one research task by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Task id to look up",
				},
			},
			Required: []string{"task_id"},
		},
	}, handlers.GetResearchTask)

	server.AddTool(mcp.Tool{
		Name:        "list_research_tasks",
		Description: "List research tasks, optionally filtered by status (working, success, failure).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Optional status filter: working, success, or failure",
				},
			},
		},
	}, handlers.ListResearchTasks)

	server.AddTool(mcp.Tool{
		Name:        "delete_research_task",
		Description: "Delete one research task by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Task id to delete",
				},
			},
			Required: []string{"task_id"},
		},
	}, handlers.DeleteResearchTask)

	server.AddTool(mcp.Tool{
		Name:        "clear_research_tasks",
		Description: "Delete all research tasks.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearResearchTasks)

	server.AddTool(mcp.Tool{
		Name:        "list_books",
		Description: "List all persisted researched books.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListBooks)

	server.AddTool(mcp.Tool{
		Name:        "delete_book",
		Description: "Delete one persisted researched book by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"book_id": map[string]interface{}{
					"type":        "string",
					"description": "Research entry id to delete",
				},
			},
			Required: []string{"book_id"},
		},
	}, handlers.DeleteBook)

	server.AddTool(mcp.Tool{
		Name:        "clear_books",
		Description: "Delete all persisted researched books.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearBooks)

	server.AddTool(mcp.Tool{
		Name:        "search_books",
		Description: "Search persisted books by free-text query using vector similarity. Returns entries with similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query, embedded server-side",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchBooks)

	server.AddTool(mcp.Tool{
		Name:        "recommend_books",
		Description: "Get LLM recommendations over the full persisted corpus, focused on the given criteria.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"criteria": map[string]interface{}{
					"type":        "string",
					"description": "Free-text criteria the recommendations should focus on",
				},
			},
		},
	}, handlers.RecommendBooks)

	server.AddTool(mcp.Tool{
		Name:        "extract_books",
		Description: "Extract structured book identities from an unstructured text blob (reading lists, notes, etc.).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Unstructured list of books and metadata",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractBooks)

	server.AddTool(mcp.Tool{
		Name:        "extract_books_from_image",
		Description: "Extract structured book identities from an image (covers, spines, reading lists).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"image_base64": map[string]interface{}{
					"type":        "string",
					"description": "Base64-encoded image data",
				},
				"mime_type": map[string]interface{}{
					"type":        "string",
					"description": "Image MIME type (image/jpeg, image/png, image/webp)",
				},
			},
			Required: []string{"image_base64", "mime_type"},
		},
	}, handlers.ExtractBooksFromImage)

	return handlers
}
