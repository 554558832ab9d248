package picker

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "save")
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move space:toggle"
func (p Panel) renderHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = p.styles.HintKey.Render(h.Key) + ":" + p.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}

// contextualHints returns the hints for the current mode.
func (p Panel) contextualHints() []Hint {
	switch p.mode {
	case ModeScanning:
		return []Hint{{"q", "quit"}}
	case ModeFolders:
		switch p.folders.Mode() {
		case FolderFilter:
			return []Hint{{"↑/↓", "move"}, {"Enter", "done"}, {"Esc", "clear"}}
		case FolderTitle:
			return []Hint{{"Enter", "create & save"}, {"Esc", "back"}}
		}
		return []Hint{{"j/k", "move"}, {"/", "filter"}, {"Enter", "save here"}, {"Esc", "back"}}
	}

	if len(p.items) == 0 {
		return []Hint{{"q", "quit"}}
	}
	return []Hint{
		{"j/k", "move"},
		{"space", "toggle"},
		{"a", "all"},
		{"o", "open"},
		{"s", "bookmark"},
		{"f", "folder"},
		{"y/Y", "copy"},
		{"q", "quit"},
	}
}
