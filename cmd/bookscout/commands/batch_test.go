// ABOUTME: Tests for batch input parsing
// ABOUTME: Verifies title/info line splitting and file plus argument merging
package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		line      string
		wantTitle string
		wantInfo  string
	}{
		{"The Fifth Season", "The Fifth Season", ""},
		{"Piranesi | by Susanna Clarke", "Piranesi", "by Susanna Clarke"},
		{"  Dune  |  1965 novel  ", "Dune", "1965 novel"},
		{"No Info |", "No Info", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			req := parseRequestLine(tt.line)
			if req.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", req.Title, tt.wantTitle)
			}
			if req.OtherInfo != tt.wantInfo {
				t.Errorf("OtherInfo = %q, want %q", req.OtherInfo, tt.wantInfo)
			}
		})
	}
}

func TestCollectRequests_FileAndArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := "Piranesi | by Susanna Clarke\n\n# a comment\nThe Obelisk Gate\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing list file: %v", err)
	}

	batchFile = path
	defer func() { batchFile = "" }()

	requests, err := collectRequests([]string{"The Fifth Season", "  "})
	if err != nil {
		t.Fatalf("collectRequests failed: %v", err)
	}

	if len(requests) != 3 {
		t.Fatalf("collectRequests returned %d requests, want 3", len(requests))
	}
	if requests[0].Title != "The Fifth Season" {
		t.Errorf("first request = %q, want The Fifth Season", requests[0].Title)
	}
	if requests[1].Title != "Piranesi" || requests[1].OtherInfo != "by Susanna Clarke" {
		t.Errorf("second request = %+v, want Piranesi / by Susanna Clarke", requests[1])
	}
	if requests[2].Title != "The Obelisk Gate" {
		t.Errorf("third request = %q, want The Obelisk Gate", requests[2].Title)
	}
}

func TestCollectRequests_MissingFile(t *testing.T) {
	batchFile = filepath.Join(t.TempDir(), "missing.txt")
	defer func() { batchFile = "" }()

	if _, err := collectRequests(nil); err == nil {
		t.Error("collectRequests with missing file succeeded, want error")
	}
}
