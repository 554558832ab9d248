// Package picker is the interactive link panel: it lists the links found on
// a page, lets the user check them, and opens or bookmarks the checked ones.
package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/linkscan/internal/extract"
	"github.com/nikbrunner/linkscan/internal/logger"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/picker/layout"
	"github.com/nikbrunner/linkscan/internal/scan"
	"github.com/nikbrunner/linkscan/internal/selection"
	"github.com/nikbrunner/linkscan/internal/tree"
	"github.com/nikbrunner/linkscan/internal/writer"
)

// AckDuration is how long a success message stays visible.
const AckDuration = 2 * time.Second

// Mode is the panel's current screen.
type Mode int

const (
	ModeScanning Mode = iota // waiting for page text
	ModeList                 // link list
	ModeFolders              // folder picker over the list
)

// Tree reads the bookmark folder hierarchy.
type Tree interface {
	GetTree(ctx context.Context) (model.TreeNode, error)
}

// Saver writes a batch of URLs as bookmarks.
type Saver interface {
	Write(ctx context.Context, urls []string, target model.FolderTarget) writer.Outcome
}

// Opener opens URLs in the browser.
type Opener interface {
	OpenAll(urls []string) error
}

// Params holds parameters for creating a new Panel.
type Params struct {
	Items        []model.LinkItem // used when Source is nil
	Source       scan.Source      // scanned on Init when set
	Tree         Tree
	Saver        Saver
	Opener       Opener
	CopyText     func(string) error // defaults to the system clipboard
	ScanTimeout  time.Duration
	StoreTimeout time.Duration
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	Layout       *layout.LayoutConfig // optional, uses default if nil
	Logger       logger.Logger        // optional
}

type (
	scannedMsg struct {
		items []model.LinkItem
		err   error
	}
	foldersLoadedMsg struct {
		folders []model.FolderDescriptor
		err     error
	}
	savedMsg struct {
		outcome writer.Outcome
	}
	openedMsg struct {
		count int
		err   error
	}
	copiedMsg struct {
		count int
		err   error
	}
	clearStatusMsg struct {
		seq int
	}
)

// Panel is the bubbletea model for the link panel.
type Panel struct {
	items  []model.LinkItem
	cursor int // 0 = select-all row, i > 0 = items[i-1]
	mode   Mode

	folders FolderPicker
	saving  bool

	status    string
	statusErr bool
	statusSeq int

	source       scan.Source
	tree         Tree
	saver        Saver
	opener       Opener
	copyText     func(string) error
	scanTimeout  time.Duration
	storeTimeout time.Duration

	keys   KeyMap
	styles Styles
	layout layout.LayoutConfig
	log    logger.Logger

	width  int
	height int
}

// New creates a Panel.
func New(params Params) Panel {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}
	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}
	cfg := layout.DefaultConfig()
	if params.Layout != nil {
		cfg = *params.Layout
	}
	log := params.Logger
	if log == nil {
		log = logger.NewNop()
	}
	copyText := params.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	p := Panel{
		items:        []model.LinkItem{},
		mode:         ModeList,
		source:       params.Source,
		tree:         params.Tree,
		saver:        params.Saver,
		opener:       params.Opener,
		copyText:     copyText,
		scanTimeout:  orDefault(params.ScanTimeout, 30*time.Second),
		storeTimeout: orDefault(params.StoreTimeout, 10*time.Second),
		keys:         keys,
		styles:       styles,
		layout:       cfg,
		log:          log,
		width:        80,
		height:       24,
	}
	if params.Source != nil {
		p.mode = ModeScanning
	} else if params.Items != nil {
		p.items = params.Items
	}
	return p
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Init implements tea.Model.
func (p Panel) Init() tea.Cmd {
	if p.mode == ModeScanning {
		return p.scanCmd()
	}
	return nil
}

// Update implements tea.Model.
func (p Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case scannedMsg:
		p.mode = ModeList
		p.cursor = 0
		if msg.err != nil {
			p.log.Error("scan failed", logger.Error(msg.err))
			p.items = []model.LinkItem{}
			return p, p.setError(fmt.Sprintf("Scan failed: %v", msg.err))
		}
		// The list is replaced wholesale on each scan.
		p.items = msg.items
		return p, nil

	case foldersLoadedMsg:
		if msg.err != nil {
			p.log.Error("load folders failed", logger.Error(msg.err))
			return p, p.setError(fmt.Sprintf("Could not load folders: %v", msg.err))
		}
		p.folders = NewFolderPicker(msg.folders, p.keys, p.layout.Input)
		p.mode = ModeFolders
		return p, nil

	case savedMsg:
		p.saving = false
		return p, p.reportOutcome(msg.outcome)

	case openedMsg:
		if msg.err != nil {
			p.log.Warn("open failed", logger.Error(msg.err))
			return p, p.setError(fmt.Sprintf("Open failed: %v", msg.err))
		}
		return p, p.setAck(fmt.Sprintf("Opened %s", plural(msg.count, "link")))

	case copiedMsg:
		if msg.err != nil {
			return p, p.setError(fmt.Sprintf("Copy failed: %v", msg.err))
		}
		return p, p.setAck(fmt.Sprintf("Copied %s", plural(msg.count, "link")))

	case clearStatusMsg:
		if msg.seq == p.statusSeq {
			p.status = ""
			p.statusErr = false
		}
		return p, nil

	case tea.KeyMsg:
		switch p.mode {
		case ModeFolders:
			return p.updateFolders(msg)
		case ModeScanning:
			if key.Matches(msg, p.keys.Quit) || key.Matches(msg, p.keys.Back) {
				return p, tea.Quit
			}
			return p, nil
		}
		return p.updateList(msg)
	}

	return p, nil
}

func (p Panel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.Back):
		return p, tea.Quit

	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.items) {
			p.cursor++
		}

	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}

	case key.Matches(msg, p.keys.Toggle):
		if len(p.items) == 0 {
			return p, nil
		}
		if p.cursor == 0 {
			p.items = selection.ToggleAll(p.items)
			return p, nil
		}
		items, err := selection.ToggleOne(p.items, p.cursor-1)
		if err != nil {
			p.log.Warn("toggle out of range", logger.Int("cursor", p.cursor), logger.Error(err))
			return p, nil
		}
		p.items = items

	case key.Matches(msg, p.keys.ToggleAll):
		if len(p.items) > 0 {
			p.items = selection.ToggleAll(p.items)
		}

	case key.Matches(msg, p.keys.Open):
		urls := selection.Checked(p.items)
		if len(urls) == 0 {
			return p, p.setAck("No links selected")
		}
		return p, p.openCmd(urls)

	case key.Matches(msg, p.keys.Save):
		return p.save(model.NoFolder())

	case key.Matches(msg, p.keys.Folder):
		if selection.Count(p.items) == 0 {
			return p, p.setAck("No links selected")
		}
		return p, p.loadFoldersCmd()

	case key.Matches(msg, p.keys.CopyURL):
		if p.cursor == 0 || p.cursor > len(p.items) {
			return p, nil
		}
		return p, p.copyCmd([]string{p.items[p.cursor-1].URL})

	case key.Matches(msg, p.keys.CopyAll):
		urls := selection.Checked(p.items)
		if len(urls) == 0 {
			return p, p.setAck("No links selected")
		}
		return p, p.copyCmd(urls)
	}

	return p, nil
}

func (p Panel) updateFolders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.folders, cmd = p.folders.Update(msg)

	if p.folders.Cancelled() {
		p.mode = ModeList
		return p, nil
	}
	if target, ok := p.folders.Target(); ok {
		p.mode = ModeList
		return p.save(target)
	}
	return p, cmd
}

// save dispatches a write of the checked URLs. An empty selection still goes
// through the writer, which reports it without touching the store.
func (p Panel) save(target model.FolderTarget) (tea.Model, tea.Cmd) {
	if p.saving || p.saver == nil {
		return p, nil
	}
	p.saving = true
	p.status = "Saving..."
	p.statusErr = false
	p.statusSeq++
	return p, p.saveCmd(selection.Checked(p.items), target)
}

func (p *Panel) reportOutcome(out writer.Outcome) tea.Cmd {
	switch out.Status {
	case writer.NothingToDo:
		if out.Reason == writer.ReasonInvalidFolderTitle {
			return p.setError("Folder title cannot be empty")
		}
		return p.setAck("No links selected")

	case writer.Success:
		return p.setAck(fmt.Sprintf("Bookmarked %s", plural(len(out.Created), "link")))

	case writer.Partial:
		return p.setError(fmt.Sprintf("Bookmarked %s, %d failed", plural(len(out.Created), "link"), len(out.Failed)))

	default:
		msg := "Bookmarking failed"
		if len(out.Failed) > 0 {
			msg = fmt.Sprintf("Bookmarking failed: %v", out.Failed[0].Err)
		}
		return p.setError(msg)
	}
}

// setAck shows a message that clears itself after AckDuration.
func (p *Panel) setAck(text string) tea.Cmd {
	p.status = text
	p.statusErr = false
	p.statusSeq++
	seq := p.statusSeq
	return tea.Tick(AckDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// setError shows a message that stays until the next status.
func (p *Panel) setError(text string) tea.Cmd {
	p.status = text
	p.statusErr = true
	p.statusSeq++
	return nil
}

func (p Panel) scanCmd() tea.Cmd {
	src, timeout := p.source, p.scanTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := src.Text(ctx)
		if err != nil {
			return scannedMsg{err: err}
		}
		return scannedMsg{items: extract.Items(text)}
	}
}

func (p Panel) loadFoldersCmd() tea.Cmd {
	t, timeout := p.tree, p.storeTimeout
	return func() tea.Msg {
		if t == nil {
			return foldersLoadedMsg{folders: []model.FolderDescriptor{}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		root, err := t.GetTree(ctx)
		if err != nil {
			return foldersLoadedMsg{err: err}
		}
		// The synthetic root is not offered; plain save covers it.
		return foldersLoadedMsg{folders: tree.FlattenAll(root.Children)}
	}
}

func (p Panel) saveCmd(urls []string, target model.FolderTarget) tea.Cmd {
	saver, timeout := p.saver, p.storeTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return savedMsg{outcome: saver.Write(ctx, urls, target)}
	}
}

func (p Panel) openCmd(urls []string) tea.Cmd {
	opener := p.opener
	return func() tea.Msg {
		if opener == nil {
			return openedMsg{err: fmt.Errorf("no browser opener configured")}
		}
		return openedMsg{count: len(urls), err: opener.OpenAll(urls)}
	}
}

func (p Panel) copyCmd(urls []string) tea.Cmd {
	copyText := p.copyText
	return func() tea.Msg {
		return copiedMsg{count: len(urls), err: copyText(strings.Join(urls, "\n"))}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Items returns the current link list.
func (p Panel) Items() []model.LinkItem {
	return p.items
}

// Cursor returns the selected row; 0 is the select-all row.
func (p Panel) Cursor() int {
	return p.cursor
}

// Mode returns the current screen.
func (p Panel) Mode() Mode {
	return p.mode
}

// Status returns the status line text.
func (p Panel) Status() string {
	return p.status
}

// FolderPicker returns the folder picker state.
func (p Panel) FolderPicker() FolderPicker {
	return p.folders
}
