// ABOUTME: Tests for BookRecord normalization and text serialization
// ABOUTME: Verifies the never-null list invariant and field-labelled AsText output
package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBookRecord_Normalize(t *testing.T) {
	var record BookRecord
	record.Normalize()

	// Every list field must be an empty slice, never nil
	lists := map[string][]string{
		"Authors":              record.Authors,
		"OtherSeriesEntries":   record.OtherSeriesEntries,
		"Awards":               record.Awards,
		"BestsellerLists":      record.BestsellerLists,
		"CriticalQuotes":       record.CriticalQuotes,
		"PositiveQuotes":       record.PositiveQuotes,
		"UserRatings":          record.UserRatings,
		"UserQuotes":           record.UserQuotes,
		"Genres":               record.Genres,
		"SimilarWorks":         record.SimilarWorks,
		"FrequentlyComparedTo": record.FrequentlyComparedTo,
		"AuthorOtherSeries":    record.AuthorOtherSeries,
		"AuthorOtherWorks":     record.AuthorOtherWorks,
	}
	for name, list := range lists {
		if list == nil {
			t.Errorf("%s is nil after Normalize, want empty slice", name)
		}
	}
}

func TestBookRecord_NormalizeKeepsValues(t *testing.T) {
	record := BookRecord{
		Authors: []string{"N.K. Jemisin"},
		Genres:  []string{"fantasy", "science fiction"},
	}
	record.Normalize()

	if len(record.Authors) != 1 || record.Authors[0] != "N.K. Jemisin" {
		t.Errorf("Authors = %v, want existing value preserved", record.Authors)
	}
	if len(record.Genres) != 2 {
		t.Errorf("Genres = %v, want existing values preserved", record.Genres)
	}
}

func TestBookRecord_NormalizedJSONHasNoNulls(t *testing.T) {
	var record BookRecord
	record.Normalize()

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("normalized record marshals with null fields: %s", data)
	}
}

func TestBookRecord_AsText(t *testing.T) {
	record := BookRecord{
		Title:           "The Fifth Season",
		Authors:         []string{"N.K. Jemisin"},
		PublicationYear: 2015,
		Genres:          []string{"fantasy"},
		Awards:          []string{"Hugo Award for Best Novel"},
		Pacing:          "steady",
	}
	record.Normalize()

	text := record.AsText()

	wants := []string{
		"Title: The Fifth Season",
		"Authors: N.K. Jemisin",
		"Publication Year: 2015",
		"Genres: fantasy",
		"Awards: Hugo Award for Best Novel",
		"Pacing: steady",
	}
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("AsText() missing %q", want)
		}
	}

	// Empty fields still get their labels so the blob shape is stable
	if !strings.Contains(text, "Critical Consensus:") {
		t.Error("AsText() missing label for empty field")
	}
}
