// Package session holds per-user view state: which screen is showing and
// which movie is selected, plus the render preferences.
package session

import (
	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
)

// Screen is the top-level view.
type Screen int

const (
	Home Screen = iota
	Details
)

func (s Screen) String() string {
	switch s {
	case Home:
		return "home"
	case Details:
		return "details"
	default:
		return "unknown"
	}
}

// State is the two-state navigation machine. A movie is selected exactly
// when the screen is Details; GoHome and GoToDetails are the only
// transitions.
//
// State is not safe for concurrent use. The terminal UI touches it from the
// bubbletea update loop only and the web shell goes through Store.
type State struct {
	screen   Screen
	selected movies.ID
}

// New returns a state on the home screen.
func New() *State {
	return &State{screen: Home}
}

// GoHome shows the home screen and clears the selection.
func (s *State) GoHome() {
	s.screen = Home
	s.selected = 0
}

// GoToDetails shows the details screen for id.
func (s *State) GoToDetails(id movies.ID) {
	s.screen = Details
	s.selected = id
}

// Screen returns the current screen.
func (s *State) Screen() Screen {
	return s.screen
}

// Selected returns the selected movie; ok is false on the home screen.
func (s *State) Selected() (movies.ID, bool) {
	if s.screen != Details {
		return 0, false
	}
	return s.selected, true
}

// Preferences are re-derived on every render and never persisted.
type Preferences struct {
	Category movies.Category
	Columns  int
}

// DefaultPreferences reads the configured defaults.
func DefaultPreferences(cfg config.UIConfig) Preferences {
	cat, _ := movies.ParseCategory(cfg.DefaultCategory)
	return Preferences{
		Category: cat,
		Columns:  ClampColumns(cfg.DefaultColumns),
	}
}

// ClampColumns bounds n to the selectable column range.
func ClampColumns(n int) int {
	switch {
	case n < config.MinColumns:
		return config.MinColumns
	case n > config.MaxColumns:
		return config.MaxColumns
	default:
		return n
	}
}
