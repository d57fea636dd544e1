// Package screens decides what the home and details screens show.
//
// Controllers here fetch through a Source and return plain view models;
// they never draw. Both shells call them once per render pass.
package screens

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/grid"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/metrics"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

// MinQueryLen is the trimmed length at which typing switches the home
// screen from the feed to search.
const MinQueryLen = 2

// Key prefixes keep open actions of grids on the same screen apart.
const (
	PrefixSearch = "search"
	PrefixHome   = "home"
	PrefixTFIDF  = "tfidf"
	PrefixGenre  = "genre"
)

// User-facing notices.
const (
	MsgSearchFailed      = "Search failed."
	MsgFeedFailed        = "Failed to load home feed."
	MsgDetailsFailed     = "Could not load details."
	MsgNoRecommendations = "No recommendations available."
)

// Source is what the controllers read from. *movies.Catalog implements it.
type Source interface {
	Search(ctx context.Context, query string) ([]movies.Summary, bool)
	Feed(ctx context.Context, category movies.Category, limit int) ([]movies.Summary, bool)
	Details(ctx context.Context, id movies.ID) (movies.Details, bool)
	Recommendations(ctx context.Context, title string, tfidfTopN, genreLimit int) (movies.Bundle, bool)
}

// Limits bound how many movies each fetch asks for.
type Limits struct {
	Feed  int
	TFIDF int
	Genre int
}

// LimitsFromConfig reads the limits from the UI config.
func LimitsFromConfig(cfg config.UIConfig) Limits {
	return Limits{Feed: cfg.FeedLimit, TFIDF: cfg.RecommendLimit, Genre: cfg.RecommendLimit}
}

// NoticeKind separates failures of required data from missing optional data.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeInfo
)

// Notice is a one-line message in place of content.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Section is a titled run of movies drawn as one grid.
type Section struct {
	Heading   string
	KeyPrefix string
	Items     []movies.Summary
}

// Layout lays the section out with the current column preference.
func (s Section) Layout(columns int) grid.Grid {
	return grid.Layout(s.Items, columns, s.KeyPrefix)
}

// Branch tells which half of the home screen rendered.
type Branch int

const (
	BranchFeed Branch = iota
	BranchSearch
)

// HomeView is the outcome of one home render pass. Exactly one of Section
// and Notice is set.
type HomeView struct {
	Branch  Branch
	Query   string
	Section *Section
	Notice  *Notice
}

// IsSearch reports whether query is long enough to search.
func IsSearch(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinQueryLen
}

// Home renders the home screen: search results when the trimmed query has
// at least MinQueryLen characters, the category feed otherwise. The two
// branches never both run in one pass.
func Home(ctx context.Context, src Source, query string, prefs session.Preferences, limits Limits) HomeView {
	q := strings.TrimSpace(query)

	if IsSearch(q) {
		v := HomeView{Branch: BranchSearch, Query: q}
		results, ok := src.Search(ctx, q)
		if !ok {
			v.Notice = &Notice{Kind: NoticeError, Text: MsgSearchFailed}
			record("search", false)
			return v
		}
		v.Section = &Section{
			Heading:   fmt.Sprintf("🔎 Results for %q", q),
			KeyPrefix: PrefixSearch,
			Items:     results,
		}
		record("search", true)
		return v
	}

	v := HomeView{Branch: BranchFeed, Query: q}
	cards, ok := src.Feed(ctx, prefs.Category, limits.Feed)
	if !ok || len(cards) == 0 {
		v.Notice = &Notice{Kind: NoticeError, Text: MsgFeedFailed}
		record("home", false)
		return v
	}
	v.Section = &Section{
		Heading:   fmt.Sprintf("🔥 %s Movies", prefs.Category.Label()),
		KeyPrefix: PrefixHome,
		Items:     cards,
	}
	record("home", true)
	return v
}

// DetailsView is the outcome of one details render pass.
type DetailsView struct {
	// Movie is nil when the details fetch failed; Notice then says so and
	// nothing else is shown.
	Movie *movies.Details
	// Notice is an error (no details) or info (no recommendations).
	Notice *Notice
	// Sections are the TF-IDF grid followed by the genre grid.
	Sections []Section
}

// Details renders the details screen for id. A failed details fetch stops
// the pass before any recommendation call; a failed recommendation fetch
// keeps the header and adds an info notice.
func Details(ctx context.Context, src Source, id movies.ID, limits Limits) DetailsView {
	d, ok := src.Details(ctx, id)
	if !ok {
		record("details", false)
		return DetailsView{Notice: &Notice{Kind: NoticeError, Text: MsgDetailsFailed}}
	}

	v := DetailsView{Movie: &d}

	// Keyed by title as the backend expects; see DESIGN.md.
	bundle, ok := src.Recommendations(ctx, d.QueryTitle(), limits.TFIDF, limits.Genre)
	if !ok {
		v.Notice = &Notice{Kind: NoticeInfo, Text: MsgNoRecommendations}
		record("details", true)
		return v
	}

	v.Sections = []Section{
		{Heading: "🔎 Similar Movies (TF-IDF)", KeyPrefix: PrefixTFIDF, Items: bundle.TFIDF},
		{Heading: "🎭 More Like This (Genre)", KeyPrefix: PrefixGenre, Items: bundle.Genre},
	}
	record("details", true)
	return v
}

func record(screen string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "unavailable"
	}
	metrics.PageRenders.WithLabelValues(screen, outcome).Inc()
	logging.Debug().Str("screen", screen).Str("outcome", outcome).Msg("render pass")
}

// Open is the action behind every card's Open affordance and the only way
// a movie becomes selected.
func Open(state *session.State, cell grid.Cell) {
	state.GoToDetails(cell.Movie.ID)
}
