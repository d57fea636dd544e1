// Package web is the browser shell: server-rendered pages over chi with one
// isolated view state per cookie session.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Swapnil-2005/movie-recommendation/internal/cache"
	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

// sweepInterval is how often idle sessions are dropped.
const sweepInterval = 5 * time.Minute

// Server serves the browser UI.
type Server struct {
	src    screens.Source
	store  *session.Store
	cfg    config.WebConfig
	ui     config.UIConfig
	limits screens.Limits
	tmpl   *template.Template

	// stats reports the response cache for /healthz; nil omits it.
	stats func() cache.Stats
}

// Option customizes a Server.
type Option func(*Server)

// WithCacheStats exposes response cache counters on /healthz.
func WithCacheStats(fn func() cache.Stats) Option {
	return func(s *Server) { s.stats = fn }
}

// New creates a browser shell reading from src.
func New(src screens.Source, cfg *config.Config, opts ...Option) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		src:    src,
		store:  session.NewStore(cfg.Web.SessionIdle),
		cfg:    cfg.Web,
		ui:     cfg.UI,
		limits: screens.LimitsFromConfig(cfg.UI),
		tmpl:   tmpl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	// Probes and scrapes are not rate limited.
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/style.css", handleStylesheet)

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))
		}
		r.Get("/", s.handlePage)
		r.Post("/open", s.handleOpen)
		r.Post("/home", s.handleHome)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.cfg.Addr).Msg("web shell listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("web shell stopped")
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				logging.Debug().Int("removed", n).Msg("swept idle sessions")
			}
		}
	}
}

// requestLogger logs one line per request with chi's request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Info().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
