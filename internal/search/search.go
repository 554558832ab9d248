package search

import (
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy folder match.
type Result struct {
	Folder         model.FolderDescriptor
	MatchedIndexes []int
	Score          int
}

// folderTitles implements fuzzy.Source for folder descriptors.
type folderTitles []model.FolderDescriptor

func (ft folderTitles) String(i int) string {
	return ft[i].Title
}

func (ft folderTitles) Len() int {
	return len(ft)
}

// FuzzySearchFolders filters folders by title using fuzzy matching.
// Results are sorted by match score (best first). An empty query keeps
// every folder in its original order.
func FuzzySearchFolders(folders []model.FolderDescriptor, query string) []Result {
	if query == "" {
		results := make([]Result, len(folders))
		for i, f := range folders {
			results[i] = Result{Folder: f}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, folderTitles(folders))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Folder:         folders[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
