package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/picker/layout"
	"github.com/nikbrunner/linkscan/internal/search"
)

// NewFolderLabel is the first entry of the folder list.
const NewFolderLabel = "Create a New Folder"

// FolderMode is the input state of the folder picker.
type FolderMode int

const (
	FolderBrowse FolderMode = iota // moving through the list
	FolderFilter                   // typing a fuzzy filter
	FolderTitle                    // typing a new folder title
)

// FolderPicker lets the user choose a bookmark folder or name a new one.
// Row 0 is the new-folder entry; row i > 0 is results[i-1].
type FolderPicker struct {
	folders   []model.FolderDescriptor
	results   []search.Result
	cursor    int
	mode      FolderMode
	filter    textinput.Model
	title     textinput.Model
	invalid   bool
	target    *model.FolderTarget
	cancelled bool
	keys      KeyMap
}

// NewFolderPicker creates a FolderPicker over the flattened folder list.
func NewFolderPicker(folders []model.FolderDescriptor, keys KeyMap, cfg layout.InputConfig) FolderPicker {
	filter := textinput.New()
	filter.Placeholder = "Filter folders..."
	filter.CharLimit = cfg.FilterCharLimit
	filter.Width = cfg.Width

	title := textinput.New()
	title.Placeholder = "Folder title"
	title.CharLimit = cfg.TitleCharLimit
	title.Width = cfg.Width

	return FolderPicker{
		folders: folders,
		results: search.FuzzySearchFolders(folders, ""),
		filter:  filter,
		title:   title,
		keys:    keys,
	}
}

// Update handles a key press.
func (p FolderPicker) Update(msg tea.KeyMsg) (FolderPicker, tea.Cmd) {
	switch p.mode {
	case FolderFilter:
		return p.updateFilter(msg)
	case FolderTitle:
		return p.updateTitle(msg)
	}

	switch {
	case key.Matches(msg, p.keys.Back):
		p.cancelled = true

	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.results) {
			p.cursor++
		}

	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}

	case key.Matches(msg, p.keys.Filter):
		p.mode = FolderFilter
		return p, p.filter.Focus()

	case key.Matches(msg, p.keys.Confirm):
		if p.cursor == 0 {
			p.mode = FolderTitle
			p.invalid = false
			return p, p.title.Focus()
		}
		target := model.ExistingFolder(p.results[p.cursor-1].Folder.ID)
		p.target = &target
	}

	return p, nil
}

func (p FolderPicker) updateFilter(msg tea.KeyMsg) (FolderPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.filter.Reset()
		p.filter.Blur()
		p.mode = FolderBrowse
		p.applyFilter()
		return p, nil

	case tea.KeyEnter:
		p.filter.Blur()
		p.mode = FolderBrowse
		return p, nil

	case tea.KeyDown:
		if p.cursor < len(p.results) {
			p.cursor++
		}
		return p, nil

	case tea.KeyUp:
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return p, cmd
}

// applyFilter recomputes results and puts the cursor on the best match.
func (p *FolderPicker) applyFilter() {
	query := p.filter.Value()
	p.results = search.FuzzySearchFolders(p.folders, query)
	p.cursor = 0
	if query != "" && len(p.results) > 0 {
		p.cursor = 1
	}
}

func (p FolderPicker) updateTitle(msg tea.KeyMsg) (FolderPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.title.Reset()
		p.title.Blur()
		p.invalid = false
		p.mode = FolderBrowse
		return p, nil

	case tea.KeyEnter:
		if strings.TrimSpace(p.title.Value()) == "" {
			p.invalid = true
			return p, nil
		}
		target := model.NewFolderTarget(p.title.Value())
		p.target = &target
		return p, nil
	}

	p.invalid = false
	var cmd tea.Cmd
	p.title, cmd = p.title.Update(msg)
	return p, cmd
}

// Target returns the chosen destination, if any.
func (p FolderPicker) Target() (model.FolderTarget, bool) {
	if p.target == nil {
		return model.FolderTarget{}, false
	}
	return *p.target, true
}

// Cancelled returns true if the user closed the picker without choosing.
func (p FolderPicker) Cancelled() bool {
	return p.cancelled
}

// Mode returns the current input mode.
func (p FolderPicker) Mode() FolderMode {
	return p.mode
}

// Cursor returns the selected row; 0 is the new-folder entry.
func (p FolderPicker) Cursor() int {
	return p.cursor
}

// Results returns the folders currently listed.
func (p FolderPicker) Results() []search.Result {
	return p.results
}
