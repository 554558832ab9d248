package model

// LinkItem is one extracted URL and whether the user has checked it.
type LinkItem struct {
	URL     string `json:"url"`
	Checked bool   `json:"checked"`
}

// FolderDescriptor is a read-only view of a bookmark folder used for selection.
type FolderDescriptor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TargetKind selects where a batch of bookmarks is written.
type TargetKind int

const (
	TargetNone     TargetKind = iota // store default location
	TargetExisting                   // an existing folder, by ID
	TargetNew                        // a folder created for the batch, by title
)

// String returns a short name for logs.
func (k TargetKind) String() string {
	switch k {
	case TargetExisting:
		return "existing"
	case TargetNew:
		return "new"
	default:
		return "none"
	}
}

// FolderTarget is the destination of a bookmark save.
// ID is set for TargetExisting, Title for TargetNew.
type FolderTarget struct {
	Kind  TargetKind
	ID    string
	Title string
}

// NoFolder targets the store's default location.
func NoFolder() FolderTarget {
	return FolderTarget{Kind: TargetNone}
}

// ExistingFolder targets the folder with the given ID.
func ExistingFolder(id string) FolderTarget {
	return FolderTarget{Kind: TargetExisting, ID: id}
}

// NewFolderTarget targets a folder that is created with the given title.
func NewFolderTarget(title string) FolderTarget {
	return FolderTarget{Kind: TargetNew, Title: title}
}
