package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

func rating(v float64) *float64 { return &v }

// fakeSource answers instantly; nil fields mean unavailable.
type fakeSource struct {
	search  []movies.Summary
	feed    []movies.Summary
	details *movies.Details
	bundle  *movies.Bundle

	searchCalls    []string
	feedCalls      []movies.Category
	detailsCalls   []movies.ID
	recommendCalls []string
}

func (f *fakeSource) Search(_ context.Context, q string) ([]movies.Summary, bool) {
	f.searchCalls = append(f.searchCalls, q)
	return f.search, f.search != nil
}

func (f *fakeSource) Feed(_ context.Context, c movies.Category, _ int) ([]movies.Summary, bool) {
	f.feedCalls = append(f.feedCalls, c)
	return f.feed, f.feed != nil
}

func (f *fakeSource) Details(_ context.Context, id movies.ID) (movies.Details, bool) {
	f.detailsCalls = append(f.detailsCalls, id)
	if f.details == nil {
		return movies.Details{}, false
	}
	return *f.details, true
}

func (f *fakeSource) Recommendations(_ context.Context, title string, _, _ int) (movies.Bundle, bool) {
	f.recommendCalls = append(f.recommendCalls, title)
	if f.bundle == nil {
		return movies.Bundle{}, false
	}
	return *f.bundle, true
}

func summaries(ids ...movies.ID) []movies.Summary {
	out := make([]movies.Summary, 0, len(ids))
	for _, id := range ids {
		out = append(out, movies.Summary{ID: id, Title: "Movie " + id.String(), Rating: rating(7.5)})
	}
	return out
}

// loaded builds a model and delivers its first render pass.
func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	return finishLoad(t, NewModel(src, config.Default()))
}

// finishLoad runs the pending fetch synchronously and feeds the reply back.
func finishLoad(t *testing.T, m Model) Model {
	t.Helper()
	if !m.loading {
		t.Fatal("expected a pending load")
	}
	return update(m, m.fetchCmd(m.requestID)())
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		m = update(m, k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	right = tea.KeyMsg{Type: tea.KeyRight}
	ctrlN = tea.KeyMsg{Type: tea.KeyCtrlN}
)

func body(m Model) string {
	s, _, _ := m.renderBody()
	return s
}

func TestInitialFeed(t *testing.T) {
	src := &fakeSource{feed: summaries(1, 2, 3)}
	m := loaded(t, src)

	if m.loading {
		t.Error("load should have finished")
	}
	if len(src.feedCalls) != 1 || src.feedCalls[0] != movies.Trending {
		t.Errorf("expected one trending feed call, got %v", src.feedCalls)
	}
	if len(src.searchCalls) != 0 {
		t.Error("empty query must not search")
	}
	out := body(m)
	for _, want := range []string{"🔥 Trending Movies", "Movie 1", "Movie 3", "⭐ 7.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if !strings.Contains(m.View(), appTitle) {
		t.Error("view should carry the app title")
	}
}

func TestSearchSubmit(t *testing.T) {
	src := &fakeSource{feed: summaries(1), search: summaries(603)}
	m := loaded(t, src)

	m = press(m, runes("Matrix"), enter)
	if !m.loading {
		t.Fatal("enter should start a search")
	}
	m = finishLoad(t, m)

	if len(src.searchCalls) != 1 || src.searchCalls[0] != "Matrix" {
		t.Errorf("expected search for Matrix, got %v", src.searchCalls)
	}
	if !strings.Contains(body(m), `🔎 Results for "Matrix"`) {
		t.Error("search heading missing")
	}
}

func TestShortQueryStaysOnFeed(t *testing.T) {
	src := &fakeSource{feed: summaries(1)}
	m := loaded(t, src)

	m = finishLoad(t, press(m, runes("a"), enter))

	if len(src.searchCalls) != 0 {
		t.Errorf("one character must not search, got %v", src.searchCalls)
	}
	if len(src.feedCalls) != 2 {
		t.Errorf("expected the feed to reload, got %d calls", len(src.feedCalls))
	}
}

func TestEmptySearchShowsPlaceholder(t *testing.T) {
	src := &fakeSource{feed: summaries(1), search: []movies.Summary{}}
	m := finishLoad(t, press(loaded(t, src), runes("zzzz"), enter))

	if !strings.Contains(body(m), "No movies found.") {
		t.Error("empty results should show the placeholder")
	}
}

func TestStaleReplyDropped(t *testing.T) {
	src := &fakeSource{feed: summaries(1), search: summaries(2)}
	m := NewModel(src, config.Default())
	stale := m.fetchCmd(m.requestID)()

	m = press(m, runes("Alien"), enter)
	m = update(m, stale)

	if m.home != nil || !m.loading {
		t.Error("a reply for an older pass must be ignored")
	}
	m = finishLoad(t, m)
	if m.home == nil || m.home.Branch != screens.BranchSearch {
		t.Errorf("expected the search pass to land, got %+v", m.home)
	}
}

func TestOpenCard(t *testing.T) {
	src := &fakeSource{
		feed:    summaries(10, 20, 30),
		details: &movies.Details{ID: 20, Title: "Heat", Overview: "A crew of thieves."},
		bundle: &movies.Bundle{
			TFIDF: summaries(31, 32),
			Genre: summaries(41),
		},
	}
	m := loaded(t, src)

	m = press(m, tab, right, enter)
	if m.state.Screen() != session.Details {
		t.Fatalf("expected details screen, got %v", m.state.Screen())
	}
	if id, ok := m.state.Selected(); !ok || id != 20 {
		t.Fatalf("expected movie 20 selected, got %v %v", id, ok)
	}

	m = finishLoad(t, m)
	if len(src.detailsCalls) != 1 || src.detailsCalls[0] != 20 {
		t.Errorf("unexpected details calls %v", src.detailsCalls)
	}
	if len(src.recommendCalls) != 1 || src.recommendCalls[0] != "Heat" {
		t.Errorf("recommendations should be keyed by title, got %v", src.recommendCalls)
	}

	out := body(m)
	tfidf := strings.Index(out, "Similar Movies (TF-IDF)")
	genre := strings.Index(out, "More Like This (Genre)")
	if tfidf < 0 || genre < 0 || tfidf > genre {
		t.Error("expected the TF-IDF grid before the genre grid")
	}
	if !strings.Contains(out, "A crew of thieves.") {
		t.Error("overview missing")
	}
}

func TestDetailsFailure(t *testing.T) {
	src := &fakeSource{feed: summaries(1)}
	m := finishLoad(t, press(loaded(t, src), tab, enter))

	if !strings.Contains(body(m), "Could not load details.") {
		t.Error("expected the details error notice")
	}
	if len(src.recommendCalls) != 0 {
		t.Error("no recommendation call after a failed details fetch")
	}
}

func TestRecommendationsFailureKeepsHeader(t *testing.T) {
	src := &fakeSource{feed: summaries(1), details: &movies.Details{ID: 1, Title: "Heat"}}
	m := finishLoad(t, press(loaded(t, src), tab, enter))

	out := body(m)
	if !strings.Contains(out, "Heat") || !strings.Contains(out, "No recommendations available.") {
		t.Errorf("expected header and info notice, got:\n%s", out)
	}
	if strings.Contains(out, "Similar Movies") {
		t.Error("no grids when recommendations are unavailable")
	}
}

func TestHomeClearsSelection(t *testing.T) {
	src := &fakeSource{feed: summaries(1), details: &movies.Details{ID: 1, Title: "Heat"}}
	m := finishLoad(t, press(loaded(t, src), tab, enter))

	m = press(m, esc)
	if m.state.Screen() != session.Home {
		t.Fatal("esc should go home")
	}
	if _, ok := m.state.Selected(); ok {
		t.Error("selection must be cleared on home")
	}
	if m.focus != focusSearch {
		t.Error("home should focus the search box")
	}
	m = finishLoad(t, m)
	if len(src.feedCalls) != 2 {
		t.Errorf("expected the feed to reload, got %d calls", len(src.feedCalls))
	}
}

func TestCategoryCycle(t *testing.T) {
	src := &fakeSource{feed: summaries(1)}
	m := finishLoad(t, press(loaded(t, src), ctrlN))

	if m.prefs.Category != movies.Popular {
		t.Errorf("expected popular, got %s", m.prefs.Category)
	}
	if got := src.feedCalls[len(src.feedCalls)-1]; got != movies.Popular {
		t.Errorf("expected a popular feed call, got %s", got)
	}
	if !strings.Contains(body(m), "🔥 Popular Movies") {
		t.Error("heading should follow the category")
	}
}

func TestColumnsClamped(t *testing.T) {
	m := press(loaded(t, &fakeSource{feed: summaries(1)}), tab)

	for range 5 {
		m = press(m, runes("+"))
	}
	if m.prefs.Columns != config.MaxColumns {
		t.Errorf("expected %d columns, got %d", config.MaxColumns, m.prefs.Columns)
	}
	for range 10 {
		m = press(m, runes("-"))
	}
	if m.prefs.Columns != config.MinColumns {
		t.Errorf("expected %d columns, got %d", config.MinColumns, m.prefs.Columns)
	}
}

func TestCursorMovement(t *testing.T) {
	src := &fakeSource{feed: summaries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)}
	m := press(loaded(t, src), tab)
	for m.prefs.Columns > config.MinColumns {
		m = press(m, runes("-"))
	}

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{down, 4},
		{down, 8},
		{down, 8}, // no row below
		{right, 9},
		{right, 9}, // last card
		{up, 5},
	}
	for i, tt := range tests {
		m = press(m, tt.key)
		if m.cursor != tt.want {
			t.Fatalf("step %d: cursor = %d, want %d", i, m.cursor, tt.want)
		}
	}
}

func TestCursorCrossesSections(t *testing.T) {
	src := &fakeSource{
		feed:    summaries(1),
		details: &movies.Details{ID: 1, Title: "Heat"},
		bundle:  &movies.Bundle{TFIDF: summaries(11, 12, 13), Genre: summaries(21, 22, 23, 24, 25)},
	}
	m := finishLoad(t, press(loaded(t, src), tab, enter))
	for m.prefs.Columns > config.MinColumns {
		m = press(m, runes("-"))
	}

	m = press(m, right, down)
	if cell, ok := m.focusedCell(); !ok || cell.Movie.ID != 22 {
		t.Fatalf("expected genre card 22, got %+v", cell)
	}
	if cell, _ := m.focusedCell(); !strings.HasPrefix(cell.Key, screens.PrefixGenre) {
		t.Errorf("expected a genre key, got %s", cell.Key)
	}

	m = press(m, up)
	if cell, _ := m.focusedCell(); cell.Movie.ID != 12 {
		t.Errorf("expected TF-IDF card 12, got %d", cell.Movie.ID)
	}
}

func TestPosterOpensBrowser(t *testing.T) {
	src := &fakeSource{
		feed:    summaries(1),
		details: &movies.Details{ID: 1, Title: "Heat", PosterURL: "https://img/heat.jpg"},
	}
	m := finishLoad(t, press(loaded(t, src), tab, enter))

	var opened string
	m.openURL = func(url string) error {
		opened = url
		return errors.New("no display")
	}

	_, cmd := m.Update(runes("p"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(openBrowserMsg)
	if !ok {
		t.Fatalf("expected openBrowserMsg")
	}
	if opened != "https://img/heat.jpg" {
		t.Errorf("opened %q", opened)
	}
	m = update(m, msg)
	if !strings.Contains(m.status, "no display") {
		t.Errorf("status should report the failure, got %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, &fakeSource{feed: summaries(1)})

	// q types into the search box until focus moves to the grid
	m = press(m, runes("q"))
	if m.textInput.Value() != "q" {
		t.Errorf("expected q in the search box, got %q", m.textInput.Value())
	}

	m = press(m, tab)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q on the grid should quit")
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"one two three", 7, "one two\nthree"},
		{"short", 10, "short"},
		{"abcdefgh", 4, "abc-\ndef-\ngh"},
		{"a abcdefgh", 4, "a\nabc-\ndef-\ngh"},
		{"untouched", 0, "untouched"},
	}
	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); got != tt.want {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
