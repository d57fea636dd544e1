// Command movierec-web serves the movie recommender to browsers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Swapnil-2005/movie-recommendation/internal/api"
	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logging.Info().
		Str("api", cfg.API.BaseURL).
		Str("addr", cfg.Web.Addr).
		Int("rate_limit", cfg.Web.RateLimit).
		Msg("Configuration loaded")

	client := api.New(cfg.API)
	catalog := movies.NewCatalog(client, cfg.API.ImageBaseURL)

	srv, err := web.New(catalog, cfg, web.WithCacheStats(client.CacheStats))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build web shell")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Web shell failed")
		stop()
		os.Exit(1)
	}
}
