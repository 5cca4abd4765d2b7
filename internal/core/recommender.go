// ABOUTME: Recommender asks the LLM to pick and justify books from the researched corpus
// ABOUTME: One prompt carries the criteria plus the serialized text of every candidate record
package core

import (
	"fmt"
	"strings"

	"github.com/harper/bookscout/internal/models"
)

const recommendPromptTemplate = `You have access to a ton of information about multiple books.
I'd like you to take into account all information about each book and make a recommendation.
The recommendation should take into account all information about the book, but with a special focus on these features:
%s

# Books and Book Info to Choose From:
%s`

// Recommender ranks researched books against free-text criteria
type Recommender struct {
	model LanguageModel
}

// NewRecommender creates a Recommender using the given provider
func NewRecommender(model LanguageModel) *Recommender {
	return &Recommender{model: model}
}

// Recommend selects and justifies a subset of candidates. The whole candidate
// corpus goes into one prompt; if it exceeds the provider's input limit the
// call fails rather than chunking.
func (r *Recommender) Recommend(criteria string, candidates []models.BookRecord) ([]models.RecommendedBook, error) {
	if strings.TrimSpace(criteria) == "" {
		criteria = "overall quality and broad appeal"
	}

	var sb strings.Builder
	for i := range candidates {
		fmt.Fprintf(&sb, "## Book %d\n\n%s\n\n", i+1, candidates[i].AsText())
	}

	prompt := fmt.Sprintf(recommendPromptTemplate, criteria, sb.String())

	var out models.Recommendations
	if err := r.model.StructuredCompletion("recommendations", prompt, &out); err != nil {
		return nil, fmt.Errorf("recommendation call: %w", err)
	}
	if out.Recommends == nil {
		out.Recommends = []models.RecommendedBook{}
	}
	return out.Recommends, nil
}
