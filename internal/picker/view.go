package picker

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/linkscan/internal/picker/layout"
	"github.com/nikbrunner/linkscan/internal/search"
	"github.com/nikbrunner/linkscan/internal/selection"
)

// Labels shown by the panel.
const (
	SelectAllLabel   = "Select All"
	UnselectAllLabel = "Unselect All"
	EmptyLabel       = "No links found"
	ScanningLabel    = "Scanning page..."
)

// View implements tea.Model.
func (p Panel) View() string {
	var b strings.Builder

	b.WriteString(p.renderHeader())
	b.WriteString("\n\n")

	switch {
	case p.mode == ModeScanning:
		b.WriteString(p.styles.Empty.Render(ScanningLabel))
		b.WriteString("\n")
	case p.mode == ModeFolders:
		b.WriteString(p.renderFolderPicker())
		b.WriteString("\n")
	case len(p.items) == 0:
		b.WriteString(p.styles.Empty.Render(EmptyLabel))
		b.WriteString("\n")
	default:
		b.WriteString(p.renderList())
	}

	b.WriteString("\n")
	b.WriteString(p.renderStatus())
	b.WriteString(p.styles.Help.Render(p.renderHints(p.contextualHints())))

	return p.styles.App.Render(b.String())
}

func (p Panel) renderHeader() string {
	title := p.styles.Title.Render("linkscan")
	if p.mode == ModeScanning {
		return title
	}
	return title + p.styles.Number.Render(fmt.Sprintf("  %s, %d checked",
		plural(len(p.items), "link"), selection.Count(p.items)))
}

// renderList renders the select-all row and the visible window of links.
func (p Panel) renderList() string {
	var b strings.Builder

	label := SelectAllLabel
	if selection.IsAllChecked(p.items) {
		label = UnselectAllLabel
	}
	b.WriteString(p.renderRow(p.cursor == 0, selection.IsAllChecked(p.items), "    ", label))
	b.WriteString("\n")

	height := layout.CalculateListHeight(p.height, p.layout.List)
	offset := layout.CalculateViewportOffset(max(p.cursor-1, 0), len(p.items), height)
	end := min(offset+height, len(p.items))
	urlWidth := layout.CalculateURLWidth(p.width, p.layout.List)

	for i := offset; i < end; i++ {
		item := p.items[i]
		url, _ := layout.TruncateText(item.URL, urlWidth, p.layout.Text)
		b.WriteString(p.renderRow(p.cursor == i+1, item.Checked, fmt.Sprintf("%3d.", i+1), url))
		b.WriteString("\n")
	}

	return b.String()
}

func (p Panel) renderRow(selected, checked bool, number, text string) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	box := "[ ]"
	if checked {
		box = p.styles.Checked.Render("[x]")
	}

	line := fmt.Sprintf("%s %s %s", box, p.styles.Number.Render(number), text)
	if selected {
		return cursor + p.styles.ItemSelected.Render(layout.StripANSI(line))
	}
	return cursor + p.styles.Item.Render(line)
}

func (p Panel) renderFolderPicker() string {
	fp := p.folders
	width := layout.CalculateModalWidth(p.width, p.layout.Modal)
	inner := width - 4 // border + padding

	var b strings.Builder
	b.WriteString(p.styles.Title.Render(fmt.Sprintf("Bookmark %s into", plural(selection.Count(p.items), "link"))))
	b.WriteString("\n\n")

	switch fp.Mode() {
	case FolderTitle:
		b.WriteString(fp.title.View())
		b.WriteString("\n")
		if fp.invalid {
			b.WriteString(p.styles.Error.Render("Folder title cannot be empty"))
			b.WriteString("\n")
		}
		return p.styles.Modal.Width(width).Render(b.String())
	case FolderFilter:
		b.WriteString(fp.filter.View())
		b.WriteString("\n\n")
	default:
		if fp.filter.Value() != "" {
			b.WriteString(p.styles.Number.Render("filter: " + fp.filter.Value()))
			b.WriteString("\n\n")
		}
	}

	rows := len(fp.results) + 1
	start, end := layout.CalculateVisibleListItems(p.layout.Modal.FoldersVisible, fp.cursor, rows)
	for row := start; row < end; row++ {
		var text string
		if row == 0 {
			text = "+ " + NewFolderLabel
		} else {
			text = p.highlight(fp.results[row-1])
		}
		text = layout.TruncateANSIAware(text, inner-2, p.layout.Text)

		if row == fp.cursor {
			b.WriteString("> " + p.styles.ItemSelected.Render(layout.StripANSI(text)))
		} else {
			b.WriteString("  " + p.styles.Item.Render(text))
		}
		b.WriteString("\n")
	}
	if len(fp.results) == 0 && len(fp.folders) > 0 {
		b.WriteString(p.styles.Empty.Render("  no matching folders"))
		b.WriteString("\n")
	}

	return p.styles.Modal.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// highlight renders a folder title with its fuzzy-matched runes styled.
func (p Panel) highlight(r search.Result) string {
	if len(r.MatchedIndexes) == 0 {
		return r.Folder.Title
	}
	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, i := range r.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, ch := range r.Folder.Title {
		if matched[i] {
			b.WriteString(p.styles.Match.Render(string(ch)))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (p Panel) renderStatus() string {
	if p.status == "" {
		return ""
	}
	style := p.styles.Success
	if p.statusErr {
		style = p.styles.Error
	}
	return style.Render(p.status) + "\n"
}
