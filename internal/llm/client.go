// ABOUTME: OpenAI client for web-search research, schema-constrained structuring, and embeddings
// ABOUTME: Search uses a search-preview chat model; structuring uses strict JSON schema response format
package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/bookscout/internal/models"
	"github.com/harper/bookscout/internal/util"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	// DefaultSearchModel is the default model for web-search research calls
	DefaultSearchModel = "gpt-4o-search-preview"
	// DefaultStructureModel is the default model for schema-constrained structuring
	DefaultStructureModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions matches the vector index dimension
	DefaultEmbeddingDimensions = 768
)

var (
	// ErrProviderUnavailable marks a provider that cannot be reached or is unconfigured
	ErrProviderUnavailable = errors.New("llm provider unavailable")
	// ErrSchemaValidation marks provider output that does not parse into the expected type
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey              string
	SearchModel         string
	StructureModel      string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	Timeout             time.Duration
	MaxRetries          int
	RetryDelay          time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:              apiKey,
		SearchModel:         DefaultSearchModel,
		StructureModel:      DefaultStructureModel,
		EmbeddingModel:      DefaultEmbeddingModel,
		EmbeddingDimensions: DefaultEmbeddingDimensions,
		Timeout:             60 * time.Second,
		MaxRetries:          3,
		RetryDelay:          time.Second * 2,
	}
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client              *openai.Client
	searchModel         string
	structureModel      string
	embeddingModel      openai.EmbeddingModel
	embeddingDimensions int
	timeout             time.Duration
	maxRetries          int
	retryDelay          time.Duration
}

// NewClient creates a new OpenAI client with the given configuration
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", ErrProviderUnavailable)
	}

	return &Client{
		client:              openai.NewClient(config.APIKey),
		searchModel:         config.SearchModel,
		structureModel:      config.StructureModel,
		embeddingModel:      config.EmbeddingModel,
		embeddingDimensions: config.EmbeddingDimensions,
		timeout:             config.Timeout,
		maxRetries:          config.MaxRetries,
		retryDelay:          config.RetryDelay,
	}, nil
}

// SearchCompletion sends a prompt to the search model with web search enabled.
// Returns the free-text answer plus the raw URL citations from the response
// annotations. Citations may repeat a URL; deduplication is the caller's job.
func (c *Client) SearchCompletion(prompt string) (string, []models.ResearchSource, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.searchModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			WebSearchOptions: &openai.WebSearchOptions{},
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		msg := resp.Choices[0].Message

		var sources []models.ResearchSource
		for _, ann := range msg.Annotations {
			if ann.URLCitation == nil {
				continue
			}
			sources = append(sources, models.ResearchSource{
				Name: ann.URLCitation.Title,
				URL:  ann.URLCitation.URL,
			})
		}

		return msg.Content, sources, nil
	}

	return "", nil, fmt.Errorf("%w: search completion failed after %d attempts: %v",
		ErrProviderUnavailable, c.maxRetries+1, lastErr)
}

// StructuredCompletion sends a prompt to the structuring model with a strict
// JSON schema derived from out's type, then unmarshals the result into out.
func (c *Client) StructuredCompletion(name, prompt string, out interface{}) error {
	content, err := c.structuredContent(name, prompt, nil, "", out)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return nil
}

// StructuredVisionCompletion is StructuredCompletion with an inline image part.
func (c *Client) StructuredVisionCompletion(name, prompt string, imageData []byte, mimeType string, out interface{}) error {
	content, err := c.structuredContent(name, prompt, imageData, mimeType, out)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return nil
}

// structuredContent runs the schema-constrained chat call and returns the raw
// JSON content. Transport failures are retried; a schema generation failure is
// not, since it cannot succeed on retry.
func (c *Client) structuredContent(name, prompt string, imageData []byte, mimeType string, out interface{}) (string, error) {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return "", fmt.Errorf("%w: generating schema for %s: %v", ErrSchemaValidation, name, err)
	}

	message := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	}
	if imageData != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
		message = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
				},
			},
		}
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.structureModel,
			Messages: []openai.ChatCompletionMessage{message},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   name,
					Schema: schema,
					Strict: true,
				},
			},
			Temperature: 0.1, // Low temperature for faithful restructuring
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: structured completion failed after %d attempts: %v",
		ErrProviderUnavailable, c.maxRetries+1, lastErr)
}

// GenerateEmbedding generates an embedding vector with the configured dimension
func (c *Client) GenerateEmbedding(text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:      []string{text},
			Model:      c.embeddingModel,
			Dimensions: c.embeddingDimensions,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		return embedding64, nil
	}

	return nil, fmt.Errorf("%w: embedding failed after %d attempts: %v",
		ErrProviderUnavailable, c.maxRetries+1, lastErr)
}
