// ABOUTME: Researcher drives the two-stage LLM call: open web research, then schema-constrained structuring
// ABOUTME: Deduplicates citation sources by URL with first-seen title winning
package core

import (
	"fmt"
	"strings"

	"github.com/harper/bookscout/internal/models"
)

// LanguageModel is the LLM provider contract the engines depend on
type LanguageModel interface {
	SearchCompletion(prompt string) (string, []models.ResearchSource, error)
	StructuredCompletion(name, prompt string, out interface{}) error
}

// Embedder converts text into a fixed-length vector
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

const searchPromptTemplate = `I need you to do research on a book titled "%s".%s
For this book, search the web thoroughly and find the following information:
  + Identity: full title, all authors, publication year, ISBN
  + Description: a thorough description or summary of the book
  + Series: series title and description, which entry this book is, other entries in the series
  + Critical Reception: awards won, bestseller lists appeared on, quotes from critical and positive reviews, the general critical consensus
  + User Reception: average or median user star ratings on sites like Goodreads, Amazon, or Barnes and Noble (as "X/5 on Source"), quotes from user reviews, the general user reception
  + Content and Reader Info: approximate page count and word count, genres, emotional tone, spicy rating, content warnings, target audience, typical reader demographics, setting time and place
  + Style: general writing style, pacing, reading difficulty, narrative point of view
  + Genre and Context: similar works, books this is frequently compared to
  + Author: the author's other series and other works, author background and fame
Make sure you provide ALL of this information comprehensively - you can't miss a single category!`

const structurePromptTemplate = `Based on the following research output about a book, reorganize ALL of the information into the requested JSON structure. Use empty strings, empty lists, or zero for anything the research did not cover.

%s`

// Researcher orchestrates book research against a LanguageModel
type Researcher struct {
	model LanguageModel
}

// NewResearcher creates a Researcher using the given provider
func NewResearcher(model LanguageModel) *Researcher {
	return &Researcher{model: model}
}

// Research performs the two-stage research call for one book. Stage 1 runs an
// open-ended web search; stage 2 structures the free text into a BookRecord.
// No local state is mutated; failures from either stage propagate.
func (r *Researcher) Research(title, otherInfo string) (*models.ResearchOutput, error) {
	prompt := buildSearchPrompt(title, otherInfo)

	text, rawSources, err := r.model.SearchCompletion(prompt)
	if err != nil {
		return nil, fmt.Errorf("research search stage: %w", err)
	}

	var record models.BookRecord
	if err := r.model.StructuredCompletion("book_record", fmt.Sprintf(structurePromptTemplate, text), &record); err != nil {
		return nil, fmt.Errorf("research structure stage: %w", err)
	}
	record.Normalize()

	return &models.ResearchOutput{
		Info:    record,
		Sources: dedupSources(rawSources),
	}, nil
}

func buildSearchPrompt(title, otherInfo string) string {
	extra := ""
	if strings.TrimSpace(otherInfo) != "" {
		extra = fmt.Sprintf(" Additional identifying information: %s.", otherInfo)
	}
	return fmt.Sprintf(searchPromptTemplate, title, extra)
}

// dedupSources removes duplicate URLs, keeping the first-seen name for each.
// An empty citation list is valid and yields an empty slice, never nil.
func dedupSources(sources []models.ResearchSource) []models.ResearchSource {
	seen := make(map[string]bool, len(sources))
	deduped := []models.ResearchSource{}
	for _, src := range sources {
		if src.URL == "" || seen[src.URL] {
			continue
		}
		seen[src.URL] = true
		deduped = append(deduped, src)
	}
	return deduped
}
