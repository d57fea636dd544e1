// Package tui is the terminal shell: a sidebar with the feed and column
// controls, a search box, and poster grids you move through with the
// keyboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/grid"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

// Which control receives key presses.
const (
	focusSearch = iota
	focusGrid
)

const (
	sidebarWidth = 28
	minCellWidth = 14
)

// Model represents the application state
type Model struct {
	src    screens.Source
	state  *session.State
	prefs  session.Preferences
	limits screens.Limits
	// fetchTimeout bounds a whole render pass (up to two API calls).
	fetchTimeout time.Duration

	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	help      help.Model
	keys      keyMap

	focus     int
	loading   bool
	requestID int

	home    *screens.HomeView
	details *screens.DetailsView
	cursor  int

	status    string
	openURL   func(string) error
	width     int
	height    int
	cellLines int
}

// NewModel creates the terminal UI on the home screen.
func NewModel(src screens.Source, cfg *config.Config) Model {
	// Set up text input for search
	ti := textinput.New()
	ti.Placeholder = "Search movie by title"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	// Set up spinner for loading states
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	// Arrow keys move the card cursor, so the viewport only pages.
	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	}

	h := help.New()
	h.Styles.ShortKey = infoStyle
	h.Styles.ShortDesc = mutedTextStyle
	h.Styles.FullKey = infoStyle
	h.Styles.FullDesc = mutedTextStyle

	m := Model{
		src:          src,
		state:        session.New(),
		prefs:        session.DefaultPreferences(cfg.UI),
		limits:       screens.LimitsFromConfig(cfg.UI),
		fetchTimeout: 2*cfg.API.Timeout + 5*time.Second,
		textInput:    ti,
		spinner:      sp,
		viewport:     vp,
		help:         h,
		keys:         keys,
		focus:        focusSearch,
		loading:      true,
		requestID:    1,
		openURL:      openBrowser,
		width:        120,
		height:       40,
	}
	m.resize(m.width, m.height)
	return m
}

// Init initializes the application and loads the first home feed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.fetchCmd(m.requestID))
}

// startLoad begins a render pass for the current screen. It bumps the
// request id so replies from older passes are dropped. Call it only on a
// model that will be returned from Update.
func (m *Model) startLoad() tea.Cmd {
	m.requestID++
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.requestID))
}

// fetchCmd runs the screen controller for the current state off the update
// loop. Everything it needs is captured by value here.
func (m Model) fetchCmd(id int) tea.Cmd {
	src, limits, prefs, timeout := m.src, m.limits, m.prefs, m.fetchTimeout

	if selected, ok := m.state.Selected(); ok {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return detailsLoadedMsg{id: id, view: screens.Details(ctx, src, selected, limits)}
		}
	}

	query := m.textInput.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return homeLoadedMsg{id: id, view: screens.Home(ctx, src, query, prefs, limits)}
	}
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case homeLoadedMsg:
		if msg.id != m.requestID || m.state.Screen() != session.Home {
			return m, nil
		}
		m.loading = false
		m.home = &msg.view
		m.clampCursor()

	case detailsLoadedMsg:
		if msg.id != m.requestID || m.state.Screen() != session.Details {
			return m, nil
		}
		m.loading = false
		m.details = &msg.view
		m.clampCursor()
		m.viewport.GotoTop()

	case openBrowserMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("failed to open browser: %v", msg.err)
			logging.Warn().Err(msg.err).Msg("open poster in browser")
		} else {
			m.status = "Opened poster in browser"
		}

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncViewport()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Global key handling
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.Home):
		return m.goHome()
	case key.Matches(msg, m.keys.FocusNext), key.Matches(msg, m.keys.FocusPrev):
		m.toggleFocus()
		return nil
	case key.Matches(msg, m.keys.NextCategory):
		m.prefs.Category = m.prefs.Category.Next()
		return m.preferencesChanged()
	case key.Matches(msg, m.keys.PrevCategory):
		m.prefs.Category = m.prefs.Category.Prev()
		return m.preferencesChanged()
	}

	// The search box only exists on the home screen.
	if m.focus == focusSearch && m.state.Screen() == session.Home {
		if key.Matches(msg, m.keys.Open) {
			m.cursor = 0
			return m.startLoad()
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.MoreColumns):
		m.prefs.Columns = session.ClampColumns(m.prefs.Columns + 1)
		m.clampCursor()
	case key.Matches(msg, m.keys.FewerColumns):
		m.prefs.Columns = session.ClampColumns(m.prefs.Columns - 1)
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Open):
		return m.openFocused()
	case key.Matches(msg, m.keys.Poster):
		return m.openPoster()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// goHome is the Home control: back to the feed or search, selection cleared.
func (m *Model) goHome() tea.Cmd {
	m.state.GoHome()
	m.details = nil
	m.cursor = 0
	m.status = ""
	m.focus = focusSearch
	m.textInput.Focus()
	m.viewport.GotoTop()
	return m.startLoad()
}

// openFocused is the focused card's Open action.
func (m *Model) openFocused() tea.Cmd {
	cell, ok := m.focusedCell()
	if !ok || m.loading {
		return nil
	}
	screens.Open(m.state, cell)
	m.home = nil
	m.details = nil
	m.cursor = 0
	m.status = ""
	m.textInput.Blur()
	m.focus = focusGrid
	return m.startLoad()
}

func (m *Model) openPoster() tea.Cmd {
	if m.details == nil || m.details.Movie == nil || m.details.Movie.PosterURL == "" {
		return nil
	}
	url, open := m.details.Movie.PosterURL, m.openURL
	return func() tea.Msg {
		return openBrowserMsg{err: open(url)}
	}
}

// preferencesChanged re-renders after a sidebar change. Only the home
// screen depends on the category.
func (m *Model) preferencesChanged() tea.Cmd {
	if m.state.Screen() != session.Home {
		return nil
	}
	m.cursor = 0
	return m.startLoad()
}

func (m *Model) toggleFocus() {
	if m.focus == focusSearch {
		m.focus = focusGrid
		m.textInput.Blur()
		return
	}
	if m.state.Screen() == session.Home {
		m.focus = focusSearch
		m.textInput.Focus()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(20, width-sidebarWidth-4)
	// header (3) + search box (3 on home) + help (2)
	m.viewport.Height = max(5, height-9)
	m.textInput.Width = max(10, m.viewport.Width-8)
	m.help.Width = width
}

// sections returns what is currently drawn as grids, in screen order.
func (m Model) sections() []screens.Section {
	switch {
	case m.state.Screen() == session.Home && m.home != nil && m.home.Section != nil:
		return []screens.Section{*m.home.Section}
	case m.state.Screen() == session.Details && m.details != nil:
		return m.details.Sections
	default:
		return nil
	}
}

// focusedCell maps the flat cursor onto the laid out grids.
func (m Model) focusedCell() (grid.Cell, bool) {
	if m.loading {
		return grid.Cell{}, false
	}
	i := m.cursor
	for _, s := range m.sections() {
		if i < len(s.Items) {
			return s.Layout(m.prefs.Columns).Cells()[i], true
		}
		i -= len(s.Items)
	}
	return grid.Cell{}, false
}

func (m Model) cellCount() int {
	n := 0
	for _, s := range m.sections() {
		n += len(s.Items)
	}
	return n
}

func (m *Model) clampCursor() {
	n := m.cellCount()
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

// moveCursor moves by rows or columns. Vertical moves stay in the same
// column and cross into the neighbouring grid at the edges.
func (m *Model) moveCursor(dRow, dCol int) {
	secs := m.sections()
	if len(secs) == 0 {
		return
	}
	cols := m.prefs.Columns

	// locate the cursor
	si, idx := 0, m.cursor
	for si < len(secs) && idx >= len(secs[si].Items) {
		idx -= len(secs[si].Items)
		si++
	}
	if si == len(secs) {
		return
	}

	switch {
	case dCol != 0:
		m.cursor += dCol
	case dRow > 0:
		if idx+cols < len(secs[si].Items) {
			m.cursor += cols
			break
		}
		// jump to the first row of the next non-empty grid
		base := m.cursor - idx + len(secs[si].Items)
		for sj := si + 1; sj < len(secs); sj++ {
			if n := len(secs[sj].Items); n > 0 {
				m.cursor = base + min(idx%cols, n-1)
				break
			}
		}
	case dRow < 0:
		if idx-cols >= 0 {
			m.cursor -= cols
			break
		}
		// jump to the last row of the previous non-empty grid
		base := m.cursor - idx
		for sj := si - 1; sj >= 0; sj-- {
			n := len(secs[sj].Items)
			base -= n
			if n > 0 {
				lastRow := (n - 1) / cols * cols
				m.cursor = base + min(lastRow+idx%cols, n-1)
				break
			}
		}
	}
	m.clampCursor()
}

// syncViewport refreshes the scrollable body and keeps the focused card in
// view.
func (m *Model) syncViewport() {
	body, focusTop, cardLines := m.renderBody()
	m.cellLines = cardLines
	m.viewport.SetContent(body)
	if focusTop < 0 || m.focus != focusGrid {
		return
	}
	if focusTop < m.viewport.YOffset {
		m.viewport.SetYOffset(focusTop)
	} else if bottom := focusTop + m.cellLines; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// Custom message types
type homeLoadedMsg struct {
	id   int
	view screens.HomeView
}

type detailsLoadedMsg struct {
	id   int
	view screens.DetailsView
}

type openBrowserMsg struct {
	err error
}
