package model

// TreeNode is one node of the hierarchical bookmark view.
// A non-nil Children slice (even an empty one) marks a folder;
// leaf bookmarks carry a URL and nil Children.
type TreeNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	URL      string     `json:"url,omitempty"`
	Children []TreeNode `json:"children"`
}

// IsFolder reports whether the node is a folder.
func (n TreeNode) IsFolder() bool {
	return n.Children != nil
}
