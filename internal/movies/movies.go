// Package movies holds the domain model the screens render and the catalog
// that turns raw API records into it.
package movies

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID is a TMDB movie identifier.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal movie id.
func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return ID(n), true
}

// Summary is one card in a grid. An empty PosterURL means no poster and a
// nil Rating means no rating badge.
type Summary struct {
	ID        ID
	Title     string
	PosterURL string
	Rating    *float64
}

// HasRating reports whether a badge should be drawn. A zero average is
// treated like a missing one.
func (s Summary) HasRating() bool {
	return s.Rating != nil && *s.Rating != 0
}

// Details is the header of the details screen.
type Details struct {
	ID        ID
	Title     string
	Overview  string
	PosterURL string

	// rawTitle is the title exactly as the API sent it, before cleanText.
	rawTitle string
}

// QueryTitle is the title to send back to the recommendation endpoint: the
// API's own string when known, the display title otherwise.
func (d Details) QueryTitle() string {
	if d.rawTitle != "" {
		return d.rawTitle
	}
	return d.Title
}

// Bundle holds both recommendation lists in API (rank) order.
type Bundle struct {
	TFIDF []Summary
	Genre []Summary
}

// Category selects a home feed.
type Category string

const (
	Trending   Category = "trending"
	Popular    Category = "popular"
	TopRated   Category = "top_rated"
	NowPlaying Category = "now_playing"
	Upcoming   Category = "upcoming"
)

// Categories lists the feed options in selector order.
var Categories = []Category{Trending, Popular, TopRated, NowPlaying, Upcoming}

// ParseCategory accepts one of the five literals. Anything else yields the
// first option and false.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return Categories[0], false
}

// Label renders the category for headings: "top_rated" -> "Top Rated".
// Casers keep state, so each call gets its own.
func (c Category) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

// Next returns the following category, wrapping around.
func (c Category) Next() Category {
	return c.offset(1)
}

// Prev returns the preceding category, wrapping around.
func (c Category) Prev() Category {
	return c.offset(-1)
}

func (c Category) offset(d int) Category {
	n := len(Categories)
	for i, cat := range Categories {
		if cat == c {
			return Categories[((i+d)%n+n)%n]
		}
	}
	return Categories[0]
}

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from API strings; both shells render plain text.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
