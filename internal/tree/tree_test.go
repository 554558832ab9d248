package tree_test

import (
	"testing"

	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/tree"
	"gotest.tools/v3/assert"
)

// sampleTree mirrors a browser bookmark tree: a synthetic root with two
// top-level folders, nested folders, leaves and an empty folder.
func sampleTree() model.TreeNode {
	return model.TreeNode{
		ID: "0",
		Children: []model.TreeNode{
			{
				ID:    "1",
				Title: "Bookmarks bar",
				Children: []model.TreeNode{
					{ID: "10", Title: "Go", URL: "https://go.dev"},
					{
						ID:    "11",
						Title: "Dev",
						Children: []model.TreeNode{
							{ID: "110", Title: "Charm", URL: "https://charm.sh"},
							{ID: "111", Title: "Empty", Children: []model.TreeNode{}},
						},
					},
				},
			},
			{
				ID:    "2",
				Title: "Other bookmarks",
				Children: []model.TreeNode{
					{ID: "20", Title: "News", URL: "https://news.ycombinator.com"},
				},
			},
		},
	}
}

func TestFlatten_PreOrder(t *testing.T) {
	got := tree.Flatten(sampleTree())

	want := []model.FolderDescriptor{
		{ID: "0", Title: ""},
		{ID: "1", Title: "Bookmarks bar"},
		{ID: "11", Title: "Dev"},
		{ID: "111", Title: "Empty"},
		{ID: "2", Title: "Other bookmarks"},
	}
	assert.DeepEqual(t, got, want)
}

func TestFlatten_CountsOnlyFolders(t *testing.T) {
	root := sampleTree()

	var folders, leaves int
	var count func(model.TreeNode)
	count = func(n model.TreeNode) {
		if n.IsFolder() {
			folders++
		} else {
			leaves++
		}
		for _, c := range n.Children {
			count(c)
		}
	}
	count(root)

	got := tree.Flatten(root)
	assert.Equal(t, len(got), folders)
	assert.Equal(t, leaves, 3)
	for _, d := range got {
		assert.Assert(t, d.ID != "10" && d.ID != "110" && d.ID != "20", "leaf %q in output", d.ID)
	}
}

func TestFlatten_LeafRoot(t *testing.T) {
	got := tree.Flatten(model.TreeNode{ID: "x", URL: "https://a.com"})
	assert.Equal(t, len(got), 0)
}

func TestFlatten_NoDedup(t *testing.T) {
	root := model.TreeNode{
		ID: "0",
		Children: []model.TreeNode{
			{ID: "dup", Title: "A", Children: []model.TreeNode{}},
			{ID: "dup", Title: "A", Children: []model.TreeNode{}},
		},
	}
	assert.Equal(t, len(tree.Flatten(root)), 3)
}

func TestFlattenAll(t *testing.T) {
	roots := []model.TreeNode{
		{ID: "a", Title: "A", Children: []model.TreeNode{}},
		{ID: "leaf", URL: "https://a.com"},
		{ID: "b", Title: "B", Children: []model.TreeNode{{ID: "c", Title: "C", Children: []model.TreeNode{}}}},
	}

	got := tree.FlattenAll(roots)
	want := []model.FolderDescriptor{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}
	assert.DeepEqual(t, got, want)
}
