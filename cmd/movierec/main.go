// Command movierec is the terminal movie recommender.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Swapnil-2005/movie-recommendation/internal/api"
	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logCfg := logging.Config{Level: "disabled", Format: cfg.Log.Format}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logCfg = logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: f}
	}
	logging.Init(logCfg)

	logging.Info().
		Str("api", cfg.API.BaseURL).
		Dur("cache_ttl", cfg.API.CacheTTL).
		Msg("starting terminal shell")

	client := api.New(cfg.API)
	catalog := movies.NewCatalog(client, cfg.API.ImageBaseURL)

	p := tea.NewProgram(tui.NewModel(catalog, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error().Err(err).Msg("terminal shell failed")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	st := client.CacheStats()
	logging.Info().Int64("cache_hits", st.Hits).Int64("cache_misses", st.Misses).Msg("terminal shell stopped")
}
