package inspect

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/edgegrab/internal/ipc"
)

const pollInterval = 500 * time.Millisecond

// windowItem implements list.Item for the window picker sidebar.
type windowItem struct {
	info ipc.WindowInfo
}

func (i windowItem) Title() string {
	prefix := "  "
	if i.info.Active {
		prefix = "* "
	}
	title := i.info.Title
	if title == "" {
		title = "(untitled)"
	}
	return prefix + title
}

func (i windowItem) Description() string {
	desc := fmt.Sprintf("  0x%08x  (%d, %d)  %dx%d",
		i.info.ID, i.info.X, i.info.Y, i.info.Width, i.info.Height)
	if i.info.Dock {
		desc += "  dock"
	}
	return desc
}

func (i windowItem) FilterValue() string { return i.info.Title }

// tickMsg drives the poll loop.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// model is the root bubbletea model for the edge inspector.
type model struct {
	client *ipc.Client

	list   list.Model
	status *ipc.StatusData
	edges  *ipc.EdgesData

	paused  bool
	lastErr string

	// Terminal dimensions
	width  int
	height int
}

func newModel(client *ipc.Client) model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := model{
		client: client,
		list:   l,
	}
	m.refresh()

	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth(), m.contentHeight())
		return m, nil

	case tickMsg:
		if !m.paused {
			m.refresh()
		}
		return m, tick()
	}

	// Delegate navigation to the window list; a selection change
	// retargets the edge map.
	before := m.selectedID()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.selectedID() != before {
		m.refreshEdges()
	}

	return m, cmd
}

// listWidth returns the width of the window picker sidebar.
func (m model) listWidth() int {
	w := m.width / 3
	if w > 40 {
		w = 40
	}
	if w < 20 {
		w = 20
	}
	return w
}

// contentHeight approximates the height left between the status bar
// and the help bar.
func (m model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) selectedID() uint32 {
	if item, ok := m.list.SelectedItem().(windowItem); ok {
		return item.info.ID
	}
	return 0
}

// refresh re-reads daemon status, the window list and the edge map.
func (m *model) refresh() {
	status, err := m.client.GetStatus()
	if err != nil {
		m.status = nil
		m.edges = nil
		m.lastErr = err.Error()
		return
	}
	m.lastErr = ""
	m.status = status

	windows, err := m.client.ListWindows()
	if err != nil {
		m.lastErr = err.Error()
		return
	}

	selected := m.selectedID()
	items := make([]list.Item, 0, len(windows.Windows))
	selectIdx := -1
	activeIdx := -1
	// The daemon reports bottom-to-top; show the top of the stack first.
	for i := len(windows.Windows) - 1; i >= 0; i-- {
		w := windows.Windows[i]
		if w.ID == selected {
			selectIdx = len(items)
		}
		if w.Active {
			activeIdx = len(items)
		}
		items = append(items, windowItem{info: w})
	}
	m.list.SetItems(items)
	if selectIdx >= 0 {
		m.list.Select(selectIdx)
	} else if activeIdx >= 0 {
		m.list.Select(activeIdx)
	}

	m.refreshEdges()
}

// refreshEdges re-reads the edge map for the selected window.
func (m *model) refreshEdges() {
	ed, err := m.client.GetEdges(m.selectedID(), "")
	if err != nil {
		m.edges = nil
		m.lastErr = err.Error()
		return
	}
	m.edges = ed
}

// Run starts the inspector TUI, polling the daemon socket.
func Run(client *ipc.Client) error {
	if err := client.Ping(); err != nil {
		return fmt.Errorf("daemon not reachable (is 'edgegrab daemon' running?): %w", err)
	}

	p := tea.NewProgram(newModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspector failed: %w", err)
	}
	return nil
}
