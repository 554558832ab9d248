package picker

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the picker.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Checked      lipgloss.Style
	Number       lipgloss.Style
	URL          lipgloss.Style
	Match        lipgloss.Style
	Modal        lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Success      lipgloss.Style
	Error        lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A5A44", Dark: "#B07A5F"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Checked: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Number: lipgloss.NewStyle().
			Foreground(subtle),

		URL: lipgloss.NewStyle().
			Foreground(primary),

		Match: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingTop(1),

		Empty: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Success: lipgloss.NewStyle().
			Foreground(accent),

		Error: lipgloss.NewStyle().
			Foreground(warn),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
