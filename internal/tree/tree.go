// Package tree flattens a bookmark tree into folder descriptors.
package tree

import "github.com/nikbrunner/linkscan/internal/model"

// Flatten returns one descriptor per folder node reachable from root,
// in pre-order with children visited in source order. The root itself is
// included when it is a folder. Leaf bookmarks are skipped.
func Flatten(root model.TreeNode) []model.FolderDescriptor {
	folders := []model.FolderDescriptor{}
	walk(root, &folders)
	return folders
}

// FlattenAll flattens each root in order, as returned by a store that
// exposes its tree as a list of top-level nodes.
func FlattenAll(roots []model.TreeNode) []model.FolderDescriptor {
	folders := []model.FolderDescriptor{}
	for _, root := range roots {
		walk(root, &folders)
	}
	return folders
}

func walk(node model.TreeNode, out *[]model.FolderDescriptor) {
	if !node.IsFolder() {
		return
	}
	*out = append(*out, model.FolderDescriptor{ID: node.ID, Title: node.Title})
	for _, child := range node.Children {
		walk(child, out)
	}
}
