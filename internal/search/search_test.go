package search

import (
	"testing"

	"github.com/nikbrunner/linkscan/internal/model"
)

func folders(titles ...string) []model.FolderDescriptor {
	out := make([]model.FolderDescriptor, len(titles))
	for i, title := range titles {
		out[i] = model.FolderDescriptor{ID: string(rune('a' + i)), Title: title}
	}
	return out
}

func TestFuzzySearchFolders_EmptyQuery(t *testing.T) {
	results := FuzzySearchFolders(folders("Work", "Reading", "Trip"), "")

	if len(results) != 3 {
		t.Fatalf("expected all 3 folders for empty query, got %d", len(results))
	}
	for i, want := range []string{"Work", "Reading", "Trip"} {
		if results[i].Folder.Title != want {
			t.Errorf("result %d: expected %q, got %q", i, want, results[i].Folder.Title)
		}
	}
}

func TestFuzzySearchFolders_ExactMatch(t *testing.T) {
	results := FuzzySearchFolders(folders("GitHub", "GitLab"), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Folder.ID != "a" {
		t.Errorf("expected folder a, got %s", results[0].Folder.ID)
	}
}

func TestFuzzySearchFolders_FuzzyMatch(t *testing.T) {
	results := FuzzySearchFolders(folders("React Router", "TanStack Router"), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Folder.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Folder.Title)
	}
}

func TestFuzzySearchFolders_NoMatch(t *testing.T) {
	results := FuzzySearchFolders(folders("GitHub"), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchFolders_CaseInsensitive(t *testing.T) {
	results := FuzzySearchFolders(folders("GitHub"), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result for case-insensitive match, got %d", len(results))
	}
}

func TestFuzzySearchFolders_DuplicateTitles(t *testing.T) {
	results := FuzzySearchFolders(folders("Trip", "Trip"), "trip")

	if len(results) != 2 {
		t.Fatalf("expected both same-titled folders, got %d", len(results))
	}
	if results[0].Folder.ID == results[1].Folder.ID {
		t.Error("expected distinct folder IDs")
	}
}

func TestFuzzySearchFolders_SortedByScore(t *testing.T) {
	results := FuzzySearchFolders(folders("React Router Documentation", "Router"), "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	if results[0].Folder.Title != "Router" {
		t.Errorf("expected 'Router' as first result, got %s", results[0].Folder.Title)
	}
}
