// Package api talks to the movie recommendation backend.
//
// Every call is best effort: FetchJSON returns the body and true, or nil and
// false. Callers never see why a call failed; transport errors, timeouts,
// HTTP statuses >= 400, malformed bodies and an open circuit breaker all
// collapse into "data unavailable".
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Swapnil-2005/movie-recommendation/internal/cache"
	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/logging"
	"github.com/Swapnil-2005/movie-recommendation/internal/metrics"
)

const (
	userAgent    = "movierec/1.0 (+https://github.com/Swapnil-2005/movie-recommendation)"
	maxBodyBytes = 8 << 20
	breakerName  = "movie-api"
)

// Params are query parameters. Values may be strings or integer/float
// numbers; anything else is formatted with fmt.
type Params map[string]any

// Fetcher is the read path the catalog depends on.
type Fetcher interface {
	FetchJSON(ctx context.Context, path string, params Params) ([]byte, bool)
}

// Client issues GET requests against the configured base URL and memoizes
// successful bodies for a short window.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache[[]byte]
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// statusError is an HTTP response with status >= 400.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

var errMalformedBody = errors.New("response body is not valid JSON")

// callerGoneError is a call abandoned because the caller's own context
// ended. It says nothing about the server.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return "caller gone: " + e.err.Error() }

func (e *callerGoneError) Unwrap() error { return e.err }

// New creates a client for cfg.
func New(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: cfg.TrimmedBaseURL(),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: cache.New[[]byte](cfg.CacheTTL),
		cb:    newBreaker(cfg),
	}
}

func newBreaker(cfg config.APIConfig) *gobreaker.CircuitBreaker[[]byte] {
	metrics.BreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		// A 4xx means the server answered, and a caller that went away
		// proves nothing; only 5xx and transport trouble count against it.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var gone *callerGoneError
			if errors.As(err, &gone) {
				return true
			}
			var se *statusError
			return errors.As(err, &se) && se.code < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// FetchJSON GETs path with params and returns the raw JSON body.
// The second result is false when the data is unavailable for any reason.
func (c *Client) FetchJSON(ctx context.Context, path string, params Params) ([]byte, bool) {
	query := encodeParams(params)
	key := path + "?" + query

	if body, ok := c.cache.Get(key); ok {
		return body, true
	}

	endpoint := endpointLabel(path)
	start := time.Now()

	body, err := c.cb.Execute(func() ([]byte, error) {
		body, err := c.get(ctx, path, query)
		if err != nil && ctx.Err() != nil {
			return nil, &callerGoneError{err: err}
		}
		return body, err
	})

	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.APIRequests.WithLabelValues(endpoint, outcome(err)).Inc()

	if err != nil {
		logging.Debug().Err(err).Str("path", path).Str("query", query).Msg("api request failed")
		return nil, false
	}

	c.cache.Set(key, body)
	return body, true
}

func (c *Client) get(ctx context.Context, path, query string) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errMalformedBody
	}
	return body, nil
}

// CacheStats exposes the response cache counters.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// Decode unmarshals a FetchJSON result into T. A body that does not fit T
// is reported as unavailable like any other failure.
//
//	feed, ok := api.Decode[[]Card](client.FetchJSON(ctx, "/home", params))
func Decode[T any](body []byte, ok bool) (T, bool) {
	var v T
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(body, &v); err != nil {
		logging.Debug().Err(err).Msg("api response does not match expected shape")
		return v, false
	}
	return v, true
}

// encodeParams renders params in sorted key order so equal parameter sets
// always produce the same cache key.
func encodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, formatValue(v))
	}
	return values.Encode()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// endpointLabel collapses per-movie paths so metric cardinality stays flat.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, "/movie/id/") {
		return "/movie/id/{id}"
	}
	return path
}

func outcome(err error) string {
	var se *statusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.As(err, new(*callerGoneError)):
		return "cancelled"
	case errors.As(err, &se):
		return "http_error"
	case errors.Is(err, errMalformedBody):
		return "bad_body"
	default:
		return "transport_error"
	}
}
