package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds link list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for link rows.
	// Accounts for: app padding (1) + header (2) + select-all row (1) + status (1) + help bar (2) = 7
	HeightReduction int

	// MinHeight is the minimum number of visible link rows.
	MinHeight int

	// RowPrefixWidth is the width of "> [x] 12. " before each URL.
	RowPrefixWidth int
}

// ModalConfig holds folder picker dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// FoldersVisible: max entries shown in the folder picker.
	FoldersVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	FilterCharLimit int
	Width           int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 7,
			MinHeight:       3,
			RowPrefixWidth:  10,
		},
		Modal: ModalConfig{
			WidthPercent:   60,
			MinWidth:       40,
			MaxWidth:       90,
			FoldersVisible: 10,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			FilterCharLimit: 50,
			Width:           40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
