// ABOUTME: MCP tool handler implementations for the bookscout server
// ABOUTME: Contains handler implementations with proper error handling for all 14 tools
package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/models"
	"github.com/harper/bookscout/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	researcher  *core.Researcher
	scheduler   *core.Scheduler
	recommender *core.Recommender
	extractor   *core.Extractor
	embedder    core.Embedder
	tasks       *storage.TaskStore
	research    *storage.ResearchStore
}

// ResearchBook handles the research_book tool
func (h *Handlers) ResearchBook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	otherInfo := request.GetString("other_info", "")

	output, err := h.researcher.Research(title, otherInfo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research failed: %v", err)), nil
	}

	return jsonResult(output)
}

// ResearchAndStore handles the research_and_store tool
func (h *Handlers) ResearchAndStore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	otherInfo := request.GetString("other_info", "")

	output, err := h.researcher.Research(title, otherInfo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research failed: %v", err)), nil
	}

	embedding, err := h.embedder.GenerateEmbedding(output.Info.AsText())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}

	entry, err := h.research.Insert(title, otherInfo, *output, embedding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to persist research: %v", err)), nil
	}

	return jsonResult(entry)
}

// ResearchBooksAsync handles the research_books_async tool
func (h *Handlers) ResearchBooksAsync(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("books argument is required and must be an array"), nil
	}
	booksRaw, exists := args["books"]
	if !exists {
		return mcp.NewToolResultError("books argument is required and must be an array"), nil
	}
	booksArray, ok := booksRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("books argument must be an array of objects"), nil
	}

	requests := make([]core.ResearchRequest, 0, len(booksArray))
	for i, item := range booksArray {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("books[%d] must be an object", i)), nil
		}
		title, ok := entry["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError(fmt.Sprintf("books[%d].title is required and must be a string", i)), nil
		}
		otherInfo, _ := entry["other_info"].(string)
		requests = append(requests, core.ResearchRequest{Title: title, OtherInfo: otherInfo})
	}

	created, err := h.scheduler.SubmitBatch(requests)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch submission partially failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"tasks": created})
}

// GetResearchTask handles the get_research_task tool
func (h *Handlers) GetResearchTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id argument is required and must be a string"), nil
	}

	task, err := h.tasks.Get(taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get task: %v", err)), nil
	}

	return jsonResult(task)
}

// ListResearchTasks handles the list_research_tasks tool
func (h *Handlers) ListResearchTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statusStr := request.GetString("status", "")

	var tasks []models.TaskRecord
	var err error
	if statusStr == "" {
		tasks, err = h.tasks.ListAll()
	} else {
		tasks, err = h.tasks.ListByStatus(models.TaskStatus(statusStr))
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"tasks": tasks})
}

// DeleteResearchTask handles the delete_research_task tool
func (h *Handlers) DeleteResearchTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id argument is required and must be a string"), nil
	}

	if err := h.tasks.Delete(taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"deleted": taskID})
}

// ClearResearchTasks handles the clear_research_tasks tool
func (h *Handlers) ClearResearchTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.tasks.DeleteAll(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear tasks: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"cleared": true})
}

// ListBooks handles the list_books tool
func (h *Handlers) ListBooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.research.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list books: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"books": entries})
}

// DeleteBook handles the delete_book tool
func (h *Handlers) DeleteBook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := request.RequireString("book_id")
	if err != nil {
		return mcp.NewToolResultError("book_id argument is required and must be a string"), nil
	}

	if err := h.research.Delete(bookID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("book not found: %s", bookID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete book: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"deleted": bookID})
}

// ClearBooks handles the clear_books tool
func (h *Handlers) ClearBooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.research.DeleteAll(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear books: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"cleared": true})
}

// SearchBooks handles the search_books tool
func (h *Handlers) SearchBooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	embedding, err := h.embedder.GenerateEmbedding(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query embedding failed: %v", err)), nil
	}

	matches, err := h.research.VectorSearch(embedding, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("vector search failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"matches": matches})
}

// RecommendBooks handles the recommend_books tool
func (h *Handlers) RecommendBooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria := request.GetString("criteria", "")

	entries, err := h.research.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load books: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultError("no researched books to recommend from"), nil
	}

	candidates := make([]models.BookRecord, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, entry.ResearchOutput.Info)
	}

	recommends, err := h.recommender.Recommend(criteria, candidates)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"recommends": recommends})
}

// ExtractBooks handles the extract_books tool
func (h *Handlers) ExtractBooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	books, err := h.extractor.FromText(text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"books": books})
}

// ExtractBooksFromImage handles the extract_books_from_image tool
func (h *Handlers) ExtractBooksFromImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imageB64, err := request.RequireString("image_base64")
	if err != nil {
		return mcp.NewToolResultError("image_base64 argument is required and must be a string"), nil
	}
	mimeType, err := request.RequireString("mime_type")
	if err != nil {
		return mcp.NewToolResultError("mime_type argument is required and must be a string"), nil
	}

	imageData, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid base64 image data: %v", err)), nil
	}

	books, err := h.extractor.FromImage(imageData, mimeType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("image extraction failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"books": books})
}

// Shutdown waits for all in-flight background research to finish
func (h *Handlers) Shutdown() {
	h.scheduler.Wait()
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
