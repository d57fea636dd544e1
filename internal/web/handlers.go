package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/Swapnil-2005/movie-recommendation/internal/grid"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

// sessionID returns the caller's session id, issuing a cookie on first
// contact.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// preferences reads the sidebar controls. Missing or bad values fall back
// to the configured defaults.
func (s *Server) preferences(v url.Values) session.Preferences {
	p := session.DefaultPreferences(s.ui)
	if c, ok := movies.ParseCategory(v.Get("category")); ok {
		p.Category = c
	}
	if n, err := strconv.Atoi(v.Get("cols")); err == nil {
		p.Columns = session.ClampColumns(n)
	}
	return p
}

func homeURL(p session.Preferences, query string) string {
	v := url.Values{}
	v.Set("category", string(p.Category))
	v.Set("cols", strconv.Itoa(p.Columns))
	if query != "" {
		v.Set("q", query)
	}
	return "/?" + v.Encode()
}

// handlePage is one render pass of whichever screen the session is on.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	prefs := s.preferences(r.URL.Query())

	// Rendering never creates a session; Open and Home do.
	state, _ := s.store.Snapshot(id)

	// Both controllers may run two sequential API calls.
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.WriteTimeout)
	defer cancel()

	data := newPageData(prefs)
	if selected, ok := state.Selected(); ok {
		data.fillDetails(screens.Details(ctx, s.src, selected, s.limits), prefs.Columns)
	} else {
		query := r.URL.Query().Get("q")
		data.Query = query
		data.fillHome(screens.Home(ctx, s.src, query, prefs, s.limits), prefs.Columns)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		logging.Error().Err(err).Msg("render page")
	}
}

// handleOpen is a card's Open button.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	movieID, ok := movies.ParseID(r.PostForm.Get("id"))
	if !ok {
		http.Error(w, "bad movie id", http.StatusBadRequest)
		return
	}

	id := s.sessionID(w, r)
	cell := grid.Cell{Movie: movies.Summary{ID: movieID}, Key: r.PostForm.Get("key")}
	s.store.With(id, func(st *session.State) { screens.Open(st, cell) })
	logging.Debug().Str("key", cell.Key).Int64("movie_id", int64(movieID)).Msg("open movie")

	http.Redirect(w, r, homeURL(s.preferences(r.PostForm), ""), http.StatusSeeOther)
}

// handleHome is the sidebar Home button.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id := s.sessionID(w, r)
	s.store.With(id, func(st *session.State) { st.GoHome() })

	http.Redirect(w, r, homeURL(s.preferences(r.PostForm), ""), http.StatusSeeOther)
}

type healthResponse struct {
	Status    string       `json:"status"`
	Sessions  int          `json:"sessions"`
	Timestamp time.Time    `json:"timestamp"`
	Cache     *cacheHealth `json:"cache,omitempty"`
}

type cacheHealth struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Sessions:  s.store.Len(),
		Timestamp: time.Now().UTC(),
	}
	if s.stats != nil {
		st := s.stats()
		resp.Cache = &cacheHealth{Hits: st.Hits, Misses: st.Misses, Entries: st.Entries}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("encode health response")
	}
}

func handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(stylesheet)
}
