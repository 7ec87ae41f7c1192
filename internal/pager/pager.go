package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loadChunk is how many display lines one load request pulls.
const loadChunk = 500

// Options configure the pager.
type Options struct {
	// Title is shown in the status bar, typically the input names.
	Title string

	// Wrap soft-wraps long lines to the terminal width instead of
	// letting the viewport chop them.
	Wrap bool

	// Load pulls up to max more display lines from the record stream.
	// done reports that the stream is exhausted. Load is called again
	// lazily as the user nears the bottom of what is already loaded.
	Load func(max int) (lines []string, done bool, err error)
}

// Run displays the stream in the built-in pager until the user quits.
// It returns the first load failure, if any, after the UI closes.
func Run(opts Options) error {
	final, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

type linesMsg struct {
	lines []string
	done  bool
}

type loadErrMsg struct{ err error }

// Model is the pager state.
type Model struct {
	opts Options
	keys keyMap

	viewport    viewport.Model
	searchInput textinput.Model

	lines   []string
	done    bool
	loading bool
	err     error

	searchActive bool
	searchQuery  string
	matches      []int
	matchIdx     int

	ready  bool
	width  int
	height int
}

// New creates the pager model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 200

	return Model{
		opts:        opts,
		keys:        defaultKeyMap(),
		searchInput: ti,
	}
}

// Init requests the first chunk of lines.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	load := m.opts.Load
	return func() tea.Msg {
		lines, done, err := load(loadChunk)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return linesMsg{lines: lines, done: done}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-1, 1))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-1, 1)
		}
		m.refreshContent()
		return m, nil

	case linesMsg:
		m.loading = false
		m.lines = append(m.lines, msg.lines...)
		m.done = msg.done
		m.refreshContent()
		if m.searchQuery != "" {
			m.rescan()
		}
		return m, m.maybeLoadMore()

	case loadErrMsg:
		m.loading = false
		m.done = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searchActive {
			return m.updateSearchInput(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searchActive = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextMatch):
		m.jumpMatch(1)
		return m, m.maybeLoadMore()

	case key.Matches(msg, m.keys.PrevMatch):
		m.jumpMatch(-1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, m.maybeLoadMore()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searchActive = false
		m.searchQuery = m.searchInput.Value()
		m.searchInput.Blur()
		m.rescan()
		m.matchIdx = -1
		m.jumpMatch(1)
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// maybeLoadMore requests another chunk when the view is close to the
// end of the loaded lines.
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.done || m.loading {
		return nil
	}
	remaining := len(m.lines) - (m.viewport.YOffset + m.viewport.Height)
	if remaining > loadChunk/2 {
		return nil
	}
	m.loading = true
	return m.loadCmd()
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	lines := m.lines
	if m.opts.Wrap && m.width > 0 {
		wrap := lipgloss.NewStyle().Width(m.width)
		wrapped := make([]string, 0, len(lines))
		for _, line := range lines {
			wrapped = append(wrapped, wrap.Render(line))
		}
		lines = wrapped
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// rescan recomputes search matches over the loaded lines. The search
// is a byte-exact substring match, like the stream filter.
func (m *Model) rescan() {
	m.matches = m.matches[:0]
	if m.searchQuery == "" {
		return
	}
	for i, line := range m.lines {
		if strings.Contains(line, m.searchQuery) {
			m.matches = append(m.matches, i)
		}
	}
}

func (m *Model) jumpMatch(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.matchIdx = (m.matchIdx + delta + len(m.matches)) % len(m.matches)
	m.viewport.SetYOffset(m.matches[m.matchIdx])
}

// View renders the viewport over a one-line status bar.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

var (
	statusStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 1)
)

func (m Model) statusBar() string {
	if m.searchActive {
		return statusStyle.Render("/" + m.searchInput.View())
	}

	left := m.opts.Title
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("%s: %v (q to quit)", left, m.err))
	}

	state := "loading"
	if m.done {
		state = fmt.Sprintf("%d lines", len(m.lines))
	}
	pos := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	if m.searchQuery != "" {
		pos = fmt.Sprintf("match %d/%d  %s", m.matchIdx+1, len(m.matches), pos)
	}
	return statusStyle.Render(fmt.Sprintf("%s  [%s]  %s", left, state, pos))
}
