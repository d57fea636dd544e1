package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Swapnil-2005/movie-recommendation/internal/grid"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

const (
	appTitle   = "🎬 Movie Recommender"
	appCaption = "Search → Explore → Discover Similar Movies"

	// poster, badge, two title lines, button
	cardBodyLines = 5
	titleLines    = 2
)

// View renders the UI
func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		captionStyle.Render(appCaption),
	)

	var main strings.Builder
	if m.state.Screen() == session.Home {
		style := inputStyle
		if m.focus == focusSearch {
			style = focusedInputStyle
		}
		main.WriteString(style.Render(m.textInput.View()))
		main.WriteString("\n")
	}
	main.WriteString(m.viewport.View())
	if m.status != "" {
		main.WriteString("\n")
		main.WriteString(mutedTextStyle.Render(m.status))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", main.String())

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, m.help.View(m.keys)),
	)
}

func (m Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render("🎬 Movie Menu"))
	sb.WriteString("\n\n")
	sb.WriteString(buttonStyle.Render("🏠 Home"))
	sb.WriteString(mutedTextStyle.Render(" esc"))
	sb.WriteString("\n\n")

	sb.WriteString(subtitleStyle.Render("Home Feed"))
	sb.WriteString(mutedTextStyle.Render(" ctrl+n/p"))
	sb.WriteString("\n")
	for _, c := range movies.Categories {
		if c == m.prefs.Category {
			sb.WriteString(infoStyle.Render("▸ " + c.Label()))
		} else {
			sb.WriteString(mutedTextStyle.Render("  " + c.Label()))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("Grid Columns"))
	sb.WriteString(mutedTextStyle.Render(" +/-"))
	sb.WriteString("\n")
	sb.WriteString(normalTextStyle.Render(fmt.Sprintf("◂ %d ▸", m.prefs.Columns)))

	return sidebarStyle.Width(sidebarWidth - 2).Render(sb.String())
}

// renderBody draws the scrollable part of the current screen. It also
// returns the line the focused card starts on (-1 when nothing is focused)
// and the height of one card.
func (m Model) renderBody() (string, int, int) {
	b := &bodyBuilder{focusTop: -1}
	width := m.viewport.Width

	if m.loading {
		b.add(m.spinner.View() + " " + normalTextStyle.Render(m.loadingText()))
		return b.String(), -1, 0
	}

	flat := 0
	switch m.state.Screen() {
	case session.Home:
		if m.home == nil {
			break
		}
		if m.home.Notice != nil {
			b.add(renderNotice(*m.home.Notice))
			break
		}
		m.renderSection(b, *m.home.Section, &flat)

	case session.Details:
		if m.details == nil {
			break
		}
		d := m.details
		if d.Movie == nil {
			if d.Notice != nil {
				b.add(renderNotice(*d.Notice))
			}
			break
		}

		if d.Movie.PosterURL != "" {
			b.add(mutedTextStyle.Render("🖼  " + d.Movie.PosterURL + "  (p to open)"))
		}
		b.add(titleStyle.Render(d.Movie.Title))
		if d.Movie.Overview != "" {
			b.add(normalTextStyle.Render(wrapText(d.Movie.Overview, width-2)))
		}
		b.add(dividerStyle.Render(strings.Repeat("─", max(1, width-2))))
		b.add(subtitleStyle.Render("✨ Recommendations"))
		if d.Notice != nil {
			b.add(renderNotice(*d.Notice))
			break
		}
		for _, s := range d.Sections {
			m.renderSection(b, s, &flat)
		}
	}

	return b.String(), b.focusTop, cardBodyLines + 2
}

func (m Model) loadingText() string {
	if m.state.Screen() == session.Details {
		return "Loading movie details... 🎬"
	}
	if screens.IsSearch(m.textInput.Value()) {
		return "Searching... 🎥"
	}
	return "Loading movies... 🍿"
}

// renderSection draws a heading and its grid row by row. flat is the index
// of the section's first card in cursor order.
func (m Model) renderSection(b *bodyBuilder, s screens.Section, flat *int) {
	b.add(subtitleStyle.Render(s.Heading))

	g := s.Layout(m.prefs.Columns)
	if g.Empty() {
		b.add(mutedTextStyle.Render(grid.EmptyMessage))
		return
	}

	cardWidth := max(minCellWidth, m.viewport.Width/g.Columns-1)
	for _, row := range g.Rows {
		cards := make([]string, 0, len(row))
		focusedRow := false
		for _, cell := range row {
			focused := m.focus == focusGrid && *flat == m.cursor
			focusedRow = focusedRow || focused
			cards = append(cards, renderCard(cell, cardWidth, focused))
			*flat++
		}
		if focusedRow {
			b.markFocus()
		}
		b.add(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
}

func renderCard(cell grid.Cell, width int, focused bool) string {
	inner := max(1, width-4) // border and padding
	lines := make([]string, 0, cardBodyLines)

	if cell.Movie.PosterURL != "" {
		lines = append(lines, mutedTextStyle.Render("🖼  poster"))
	} else {
		lines = append(lines, "")
	}
	if cell.Badge != "" {
		lines = append(lines, badgeStyle.Render(cell.Badge))
	} else {
		lines = append(lines, "")
	}

	title := strings.Split(wrapText(cell.Movie.Title, inner), "\n")
	if len(title) > titleLines {
		title = title[:titleLines]
		title[titleLines-1] = truncate(title[titleLines-1], inner)
	}
	for len(title) < titleLines {
		title = append(title, "")
	}
	lines = append(lines, normalTextStyle.Render(strings.Join(title, "\n")))

	button := buttonStyle.Render("Open")
	style := cardStyle
	if focused {
		button = focusedButtonStyle.Render("Open")
		style = focusedCardStyle
	}
	lines = append(lines, button)

	return style.Width(width - 2).Height(cardBodyLines).Render(strings.Join(lines, "\n"))
}

func renderNotice(n screens.Notice) string {
	if n.Kind == screens.NoticeError {
		return errorStyle.Render(n.Text)
	}
	return infoStyle.Render(n.Text)
}

// bodyBuilder stacks blocks and remembers the line the focused row starts
// on.
type bodyBuilder struct {
	blocks   []string
	lines    int
	focusTop int
	pending  bool
}

func (b *bodyBuilder) markFocus() { b.pending = true }

func (b *bodyBuilder) add(block string) {
	if b.pending {
		b.focusTop = b.lines
		b.pending = false
	}
	b.blocks = append(b.blocks, block)
	b.lines += lipgloss.Height(block)
}

func (b *bodyBuilder) String() string {
	return strings.Join(b.blocks, "\n")
}

// wrapText wraps text to fit within a given width
func wrapText(text string, width int) string {
	if width < 2 {
		return text
	}

	var result strings.Builder
	var lineLength int

	for i, word := range strings.Fields(text) {
		runes := []rune(word)

		// Break words longer than a line
		for len(runes) > width {
			if lineLength > 0 {
				result.WriteString("\n")
				lineLength = 0
			}
			result.WriteString(string(runes[:width-1]) + "-\n")
			runes = runes[width-1:]
		}

		// Start a new line if the word does not fit
		if lineLength > 0 && lineLength+1+len(runes) > width {
			result.WriteString("\n")
			lineLength = 0
		} else if i > 0 && lineLength > 0 {
			result.WriteString(" ")
			lineLength++
		}

		result.WriteString(string(runes))
		lineLength += len(runes)
	}

	return result.String()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
