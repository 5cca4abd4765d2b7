// ABOUTME: Extractor pulls structured book identities out of unstructured text or an image
// ABOUTME: Stateless transform, independent of the research pipeline
package core

import (
	"fmt"

	"github.com/harper/bookscout/internal/models"
)

// VisionLanguageModel extends LanguageModel with image input
type VisionLanguageModel interface {
	LanguageModel
	StructuredVisionCompletion(name, prompt string, imageData []byte, mimeType string, out interface{}) error
}

const extractPromptTemplate = `Your job is to organize information provided from an unstructured list/descriptions of books into a structured format for programmatic parsing. Break the following book titles/information into discrete books/entries:

book_list: %s`

const extractImagePrompt = `Your job is to identify the books shown or listed in this image (covers, spines, reading lists, screenshots) and organize them into a structured format for programmatic parsing. Break them into discrete books/entries.`

// Extractor turns free-form book lists into structured identities
type Extractor struct {
	model VisionLanguageModel
}

// NewExtractor creates an Extractor using the given provider
func NewExtractor(model VisionLanguageModel) *Extractor {
	return &Extractor{model: model}
}

// FromText extracts book identities from an unstructured text blob
func (e *Extractor) FromText(blob string) ([]models.ExtractedBook, error) {
	var out models.ExtractedBooks
	if err := e.model.StructuredCompletion("extracted_books", fmt.Sprintf(extractPromptTemplate, blob), &out); err != nil {
		return nil, fmt.Errorf("text extraction call: %w", err)
	}
	if out.Books == nil {
		out.Books = []models.ExtractedBook{}
	}
	return out.Books, nil
}

// FromImage extracts book identities from image bytes
func (e *Extractor) FromImage(imageData []byte, mimeType string) ([]models.ExtractedBook, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	if !allowedImageType(mimeType) {
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	var out models.ExtractedBooks
	if err := e.model.StructuredVisionCompletion("extracted_books", extractImagePrompt, imageData, mimeType, &out); err != nil {
		return nil, fmt.Errorf("image extraction call: %w", err)
	}
	if out.Books == nil {
		out.Books = []models.ExtractedBook{}
	}
	return out.Books, nil
}

func allowedImageType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}
