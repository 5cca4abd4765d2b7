// ABOUTME: ResearchStore persists completed research entries with embeddings
// ABOUTME: Cosine similarity vector search with candidate over-fetch, idempotent index creation
package storage

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/harper/bookscout/internal/charm"
	"github.com/harper/bookscout/internal/models"
)

// IndexName is the single cosine-similarity index over the embedding field
const IndexName = "vector_index"

// indexDescriptor records the vector index configuration in the document store
type indexDescriptor struct {
	Name       string `json:"name"`
	Dimensions int    `json:"dimensions"`
	Similarity string `json:"similarity"`
}

// ResearchStore manages ResearchEntries under the research: key prefix
type ResearchStore struct {
	kv        KV
	dimension int
}

// NewResearchStore creates a ResearchStore expecting embeddings of the given dimension
func NewResearchStore(kv KV, dimension int) *ResearchStore {
	return &ResearchStore{kv: kv, dimension: dimension}
}

// EnsureIndex creates the vector index descriptor if absent. Calling it again
// is a no-op; a descriptor with a different dimension is an error, not a
// silent re-create.
func (s *ResearchStore) EnsureIndex() error {
	var existing indexDescriptor
	err := s.kv.GetJSON(charm.IndexKey(IndexName), &existing)
	if err == nil {
		if existing.Dimensions != s.dimension {
			return fmt.Errorf("index %s has dimension %d, store configured for %d",
				IndexName, existing.Dimensions, s.dimension)
		}
		return nil
	}
	if !errors.Is(err, charm.ErrNotFound) {
		return fmt.Errorf("failed to check index: %w", err)
	}

	desc := indexDescriptor{
		Name:       IndexName,
		Dimensions: s.dimension,
		Similarity: "cosine",
	}
	if err := s.kv.SetJSON(charm.IndexKey(IndexName), desc); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// Insert persists a new research entry. The embedding length must match the
// configured index dimension.
func (s *ResearchStore) Insert(providedTitle, providedOtherInfo string, output models.ResearchOutput, embedding []float64) (*models.ResearchEntry, error) {
	if len(embedding) != s.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dimension, len(embedding))
	}

	entry := &models.ResearchEntry{
		ID:                uuid.New().String(),
		ProvidedTitle:     providedTitle,
		ProvidedOtherInfo: providedOtherInfo,
		ResearchOutput:    output,
		Embedding:         embedding,
	}

	if err := s.kv.SetJSON(charm.ResearchKey(entry.ID), entry); err != nil {
		return nil, fmt.Errorf("failed to insert research entry: %w", err)
	}
	return entry, nil
}

// Get retrieves a research entry by id
func (s *ResearchStore) Get(id string) (*models.ResearchEntry, error) {
	var entry models.ResearchEntry
	if err := s.kv.GetJSON(charm.ResearchKey(id), &entry); err != nil {
		if errors.Is(err, charm.ErrNotFound) {
			return nil, fmt.Errorf("research entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get research entry %s: %w", id, err)
	}
	return &entry, nil
}

// ListAll returns every persisted research entry
func (s *ResearchStore) ListAll() ([]models.ResearchEntry, error) {
	keys, err := s.kv.ListKeys(charm.ResearchPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list research keys: %w", err)
	}

	entries := []models.ResearchEntry{}
	for _, key := range keys {
		var entry models.ResearchEntry
		if err := s.kv.GetJSON(key, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete removes a research entry by id
func (s *ResearchStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.kv.Delete(charm.ResearchKey(id)); err != nil {
		return fmt.Errorf("failed to delete research entry %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every research entry
func (s *ResearchStore) DeleteAll() error {
	keys, err := s.kv.ListKeys(charm.ResearchPrefix)
	if err != nil {
		return fmt.Errorf("failed to list research keys: %w", err)
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// VectorSearch returns up to limit entries by descending cosine similarity to
// the query embedding. A candidate set of limit*10 is collected before the
// final truncation, matching the over-fetch the approximate index would need
// to absorb recall loss.
func (s *ResearchStore) VectorSearch(queryEmbedding []float64, limit int) ([]models.SearchMatch, error) {
	if len(queryEmbedding) != s.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dimension, len(queryEmbedding))
	}
	if limit <= 0 {
		limit = 5
	}

	entries, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	candidates := make([]models.SearchMatch, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, models.SearchMatch{
			Entry:      entry,
			Similarity: cosineSimilarity(queryEmbedding, entry.Embedding),
		})
	}

	// Sort by similarity score (descending)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	// Over-fetched candidate set, then the caller-visible truncation
	if len(candidates) > limit*10 {
		candidates = candidates[:limit*10]
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
