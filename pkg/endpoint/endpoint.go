// Package endpoint provides a typed HTTP client for JSON APIs with
// structured errors and per-endpoint request metrics.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for endpoint calls.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apikit_endpoint_requests_total",
		Help: "Total API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "apikit_endpoint_request_duration_seconds",
		Help:    "API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	decodeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apikit_endpoint_decode_errors_total",
		Help: "Total response decode failures by endpoint",
	}, []string{"endpoint"})
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls JSON endpoints below a fixed base URL.
type Client struct {
	base       *url.URL
	httpClient Doer
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the absolute URL request paths are resolved against.
	BaseURL string

	// User-Agent header sent with every request.
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// HTTPClient overrides the underlying HTTP client (for testing or
	// custom transports). When nil a default client is used.
	HTTPClient Doer

	// Timeout for the default HTTP client. Ignored when HTTPClient is set.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, userAgent string) Config {
	return Config{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new endpoint client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute (got %q)", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	logger := log.With().Str("component", "endpoint").Logger()

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Request describes a single call to an API endpoint.
type Request struct {
	// Method defaults to GET.
	Method string

	// Path is resolved against the client's base URL.
	Path string

	// Query is encoded into the URL query string. It follows the
	// go-querystring `url` struct tag conventions. May be nil.
	Query any

	// Body is JSON-encoded into the request body. May be nil.
	Body any

	// Header holds additional headers, e.g. Authorization.
	Header http.Header
}

// Response carries the decoded value together with the raw response.
type Response[T any] struct {
	Value  T
	Body   []byte
	Status int
	Header http.Header
}

// Call performs the request and decodes the JSON response body into T.
// Any status other than 200 is returned as a *ResponseError, a body that
// fails to decode as a *DecodeError.
func Call[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := c.base.JoinPath(req.Path)
	if req.Query != nil {
		values, err := query.Values(req.Query)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = values.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	endpoint := u.Path

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Msg("Executing API request")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "read_error").Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("API request error")
		return nil, &ResponseError{
			URL:    u.String(),
			Status: resp.StatusCode,
			Body:   string(data),
		}
	}

	out := &Response[T]{
		Body:   data,
		Status: resp.StatusCode,
		Header: resp.Header,
	}
	if err := json.Unmarshal(data, &out.Value); err != nil {
		decodeErrorsTotal.WithLabelValues(endpoint).Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Response decode failed")
		return nil, &DecodeError{
			URL:  u.String(),
			Body: string(data),
			Err:  err,
		}
	}

	return out, nil
}
