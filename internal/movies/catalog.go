package movies

import (
	"context"
	"strings"

	"github.com/Swapnil-2005/movie-recommendation/internal/api"
)

// API paths.
const (
	searchPath    = "/tmdb/search"
	homePath      = "/home"
	detailsPath   = "/movie/id/"
	recommendPath = "/movie/search"
)

// Catalog reads movies through the API client. Every method reports false
// when the data is unavailable; it never says why.
type Catalog struct {
	fetcher   api.Fetcher
	imageBase string
}

// NewCatalog wires a catalog to f. imageBaseURL is prefixed to the relative
// poster paths returned by the search endpoint.
func NewCatalog(f api.Fetcher, imageBaseURL string) *Catalog {
	return &Catalog{fetcher: f, imageBase: imageBaseURL}
}

// searchResponse is the /tmdb/search body, a TMDB passthrough. A body
// without a results key is unavailable, not empty.
type searchResponse struct {
	Results *[]struct {
		ID          ID       `json:"id"`
		Title       string   `json:"title"`
		PosterPath  string   `json:"poster_path"`
		VoteAverage *float64 `json:"vote_average"`
	} `json:"results"`
}

// card is the ready-to-render record used by /home and the recommendations.
type card struct {
	TMDBID      ID       `json:"tmdb_id"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url"`
	VoteAverage *float64 `json:"vote_average"`
}

type detailsRecord struct {
	Title     string `json:"title"`
	Overview  string `json:"overview"`
	PosterURL string `json:"poster_url"`
}

// bundleRecord needs at least one of its lists; a body with neither is
// unavailable.
type bundleRecord struct {
	TFIDF *[]tfidfEntry `json:"tfidf_recommendations"`
	Genre *[]card       `json:"genre_recommendations"`
}

type tfidfEntry struct {
	TMDB *card `json:"tmdb"`
}

func (c card) summary() Summary {
	return Summary{
		ID:        c.TMDBID,
		Title:     cleanText(c.Title),
		PosterURL: strings.TrimSpace(c.PosterURL),
		Rating:    c.VoteAverage,
	}
}

// Search looks titles up by free text. Poster paths are joined with the
// image base URL.
func (c *Catalog) Search(ctx context.Context, query string) ([]Summary, bool) {
	resp, ok := api.Decode[searchResponse](c.fetcher.FetchJSON(ctx, searchPath, api.Params{"query": query}))
	if !ok || resp.Results == nil {
		return nil, false
	}

	out := make([]Summary, 0, len(*resp.Results))
	for _, r := range *resp.Results {
		s := Summary{
			ID:     r.ID,
			Title:  cleanText(r.Title),
			Rating: r.VoteAverage,
		}
		if p := strings.TrimSpace(r.PosterPath); p != "" {
			s.PosterURL = c.imageBase + p
		}
		out = append(out, s)
	}
	return out, true
}

// Feed returns up to limit cards for a home category.
func (c *Catalog) Feed(ctx context.Context, category Category, limit int) ([]Summary, bool) {
	cards, ok := api.Decode[[]card](c.fetcher.FetchJSON(ctx, homePath, api.Params{
		"category": string(category),
		"limit":    limit,
	}))
	if !ok {
		return nil, false
	}
	return summaries(cards), true
}

// Details fetches one movie. An empty object counts as unavailable.
func (c *Catalog) Details(ctx context.Context, id ID) (Details, bool) {
	rec, ok := api.Decode[detailsRecord](c.fetcher.FetchJSON(ctx, detailsPath+id.String(), nil))
	if !ok || (rec.Title == "" && rec.Overview == "") {
		return Details{}, false
	}
	return Details{
		ID:        id,
		Title:     cleanText(rec.Title),
		Overview:  cleanText(rec.Overview),
		PosterURL: strings.TrimSpace(rec.PosterURL),
		rawTitle:  rec.Title,
	}, true
}

// Recommendations asks for movies similar to title. The backend matches on
// the title, not the id, so two films sharing a title share results; pass
// Details.QueryTitle so the backend sees the title it sent.
// TF-IDF entries without a tmdb object are skipped.
func (c *Catalog) Recommendations(ctx context.Context, title string, tfidfTopN, genreLimit int) (Bundle, bool) {
	rec, ok := api.Decode[bundleRecord](c.fetcher.FetchJSON(ctx, recommendPath, api.Params{
		"query":       title,
		"tfidf_top_n": tfidfTopN,
		"genre_limit": genreLimit,
	}))
	if !ok || (rec.TFIDF == nil && rec.Genre == nil) {
		return Bundle{}, false
	}

	var tfidf []tfidfEntry
	if rec.TFIDF != nil {
		tfidf = *rec.TFIDF
	}
	var genre []card
	if rec.Genre != nil {
		genre = *rec.Genre
	}

	b := Bundle{
		TFIDF: make([]Summary, 0, len(tfidf)),
		Genre: summaries(genre),
	}
	for _, x := range tfidf {
		if x.TMDB == nil {
			continue
		}
		b.TFIDF = append(b.TFIDF, x.TMDB.summary())
	}
	return b, true
}

func summaries(cards []card) []Summary {
	out := make([]Summary, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.summary())
	}
	return out
}
