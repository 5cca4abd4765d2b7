// ABOUTME: BookRecord is the canonical structured result of researching one book
// ABOUTME: Includes Normalize for the never-null invariant and AsText for embedding input
package models

import (
	"fmt"
	"strings"
)

// BookRecord holds everything the research pipeline learns about a single book.
// It is produced in one shot by the structuring stage and never mutated after.
type BookRecord struct {
	// Identity
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	PublicationYear int      `json:"publication_year"`
	ISBN            string   `json:"isbn"`

	// Series
	SeriesTitle        string   `json:"series_title"`
	SeriesEntryNumber  int      `json:"series_entry_number"`
	SeriesDescription  string   `json:"series_description"`
	OtherSeriesEntries []string `json:"other_series_entries"`

	// Critical reception
	Awards            []string `json:"awards"`
	BestsellerLists   []string `json:"bestseller_lists"`
	CriticalQuotes    []string `json:"critical_quotes"`
	PositiveQuotes    []string `json:"positive_quotes"`
	CriticalConsensus string   `json:"critical_consensus"`

	// User reception
	UserRatings   []string `json:"user_ratings"`
	UserQuotes    []string `json:"user_quotes"`
	UserReception string   `json:"user_reception"`

	// Content
	PageCount          int      `json:"page_count"`
	WordCount          int      `json:"word_count"`
	Genres             []string `json:"genres"`
	Description        string   `json:"description"`
	EmotionalTone      string   `json:"emotional_tone"`
	SpicyRating        string   `json:"spicy_rating"`
	ContentWarnings    string   `json:"content_warnings"`
	TargetAudience     string   `json:"target_audience"`
	ReaderDemographics string   `json:"reader_demographics"`
	SettingTimePlace   string   `json:"setting_time_place"`

	// Style
	GeneralStyle      string `json:"general_style"`
	Pacing            string `json:"pacing"`
	ReadingDifficulty string `json:"reading_difficulty"`
	NarrativePOV      string `json:"narrative_pov"`

	// Context
	SimilarWorks         []string `json:"similar_works"`
	FrequentlyComparedTo []string `json:"frequently_compared_to"`

	// Author
	AuthorOtherSeries []string `json:"author_other_series"`
	AuthorOtherWorks  []string `json:"author_other_works"`
	AuthorBackground  string   `json:"author_background"`
}

// Normalize replaces nil slices with empty ones so a record is never
// semantically null after the structuring stage.
func (b *BookRecord) Normalize() {
	for _, s := range []*[]string{
		&b.Authors, &b.OtherSeriesEntries, &b.Awards, &b.BestsellerLists,
		&b.CriticalQuotes, &b.PositiveQuotes, &b.UserRatings, &b.UserQuotes,
		&b.Genres, &b.SimilarWorks, &b.FrequentlyComparedTo,
		&b.AuthorOtherSeries, &b.AuthorOtherWorks,
	} {
		if *s == nil {
			*s = []string{}
		}
	}
}

// AsText serializes the record to a field-labelled text blob. The blob is the
// embedding input and the per-book context handed to the recommendation model.
func (b *BookRecord) AsText() string {
	var sb strings.Builder

	write := func(label, value string) {
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	writeList := func(label string, values []string) {
		write(label, strings.Join(values, ", "))
	}

	write("Title", b.Title)
	writeList("Authors", b.Authors)
	write("Publication Year", fmt.Sprintf("%d", b.PublicationYear))
	write("ISBN", b.ISBN)
	write("Series Title", b.SeriesTitle)
	write("Series Entry Number", fmt.Sprintf("%d", b.SeriesEntryNumber))
	write("Series Description", b.SeriesDescription)
	writeList("Other Series Entries", b.OtherSeriesEntries)
	writeList("Awards", b.Awards)
	writeList("Bestseller Lists", b.BestsellerLists)
	writeList("Critical Quotes", b.CriticalQuotes)
	writeList("Positive Quotes", b.PositiveQuotes)
	write("Critical Consensus", b.CriticalConsensus)
	writeList("User Ratings", b.UserRatings)
	writeList("User Quotes", b.UserQuotes)
	write("User Reception", b.UserReception)
	write("Page Count", fmt.Sprintf("%d", b.PageCount))
	write("Word Count", fmt.Sprintf("%d", b.WordCount))
	writeList("Genres", b.Genres)
	write("Description", b.Description)
	write("Emotional Tone", b.EmotionalTone)
	write("Spicy Rating", b.SpicyRating)
	write("Content Warnings", b.ContentWarnings)
	write("Target Audience", b.TargetAudience)
	write("Reader Demographics", b.ReaderDemographics)
	write("Setting Time and Place", b.SettingTimePlace)
	write("General Style", b.GeneralStyle)
	write("Pacing", b.Pacing)
	write("Reading Difficulty", b.ReadingDifficulty)
	write("Narrative POV", b.NarrativePOV)
	writeList("Similar Works", b.SimilarWorks)
	writeList("Frequently Compared To", b.FrequentlyComparedTo)
	writeList("Author Other Series", b.AuthorOtherSeries)
	writeList("Author Other Works", b.AuthorOtherWorks)
	write("Author Background", b.AuthorBackground)

	return sb.String()
}
