// ABOUTME: Research output, citation source, and persisted research entry models
// ABOUTME: ResearchEntry pairs a ResearchOutput with its embedding for vector search
package models

// ResearchSource is a named URL citation attached to a research result.
type ResearchSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResearchOutput pairs a structured BookRecord with its citation sources.
type ResearchOutput struct {
	Info    BookRecord       `json:"info"`
	Sources []ResearchSource `json:"sources"`
}

// ResearchEntry is a persisted, completed research result plus its embedding.
// Created once on successful research completion, never mutated.
type ResearchEntry struct {
	ID                string         `json:"id"`
	ProvidedTitle     string         `json:"provided_title"`
	ProvidedOtherInfo string         `json:"provided_other_info,omitempty"`
	ResearchOutput    ResearchOutput `json:"research_output"`
	Embedding         []float64      `json:"embedding"`
}

// SearchMatch is a vector search hit with its cosine similarity score.
type SearchMatch struct {
	Entry      ResearchEntry `json:"entry"`
	Similarity float64       `json:"similarity"`
}

// RecommendedBook is one pick from the recommendation engine.
type RecommendedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Reason string `json:"reason"`
}

// Recommendations is the schema-constrained recommendation result.
type Recommendations struct {
	Recommends []RecommendedBook `json:"recommends"`
}

// ExtractedBook is a book identity pulled out of unstructured text or an image.
type ExtractedBook struct {
	Title     string `json:"title"`
	OtherInfo string `json:"other_info"`
}

// ExtractedBooks is the schema-constrained extraction result.
type ExtractedBooks struct {
	Books []ExtractedBook `json:"books"`
}
