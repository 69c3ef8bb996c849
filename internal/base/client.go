// Package base provides the HTTP forwarding infrastructure for the Dragon Ball API.
package base

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	apierrors "github.com/olgasafonova/dragonball-mcp-server/internal/errors"
	"github.com/olgasafonova/dragonball-mcp-server/metrics"
	"github.com/olgasafonova/dragonball-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the server to upstream APIs
	DefaultUserAgent = "dragonball-mcp-server/1.0"

	// MaxResponseBytes caps how much of an upstream body is read
	MaxResponseBytes = 10 << 20
)

// Client issues single, un-retried GET requests and reports them to metrics and tracing.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// WithUserAgent sets the User-Agent header sent upstream
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		if ua != "" {
			client.UserAgent = ua
		}
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
		UserAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	if c.HTTPClient != nil {
		c.HTTPClient.CloseIdleConnections()
	}
}

// RequestConfig configures a single HTTP request
type RequestConfig struct {
	URL      string
	Endpoint string // short label for metrics and spans, e.g. "characters"
}

// DoRequest performs exactly one GET request. Returns the response body and
// status code; only failures to obtain a response are returned as errors.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	ctx, span := tracing.StartSpan(ctx, "dragonball.api."+cfg.Endpoint)
	defer span.End()
	tracing.AddUpstreamAttributes(span, cfg.Endpoint, cfg.URL)

	start := time.Now()
	body, status, err := c.do(ctx, cfg)
	duration := time.Since(start)

	metrics.RecordUpstreamCall(cfg.Endpoint, duration.Seconds(), status)
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if err != nil {
		tracing.RecordError(span, err)
		span.SetStatus(codes.Error, err.Error())
		c.Logger.Warn("Upstream request failed",
			"endpoint", cfg.Endpoint,
			"url", cfg.URL,
			"error", err)
		return nil, 0, err
	}

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	c.Logger.Debug("Upstream request completed",
		"endpoint", cfg.Endpoint,
		"status", status,
		"bytes", len(body),
		"duration_ms", duration.Milliseconds())
	return body, status, nil
}

func (c *Client) do(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, 0, apierrors.NewTransportError("request", cfg.URL, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, apierrors.NewTransportError("request", cfg.URL, err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, resp.StatusCode, apierrors.NewTransportError("read", cfg.URL, err)
	}

	return body, resp.StatusCode, nil
}

// GetJSON performs DoRequest and decodes a 2xx body into out.
// Non-2xx statuses become UpstreamHTTPError; undecodable bodies become TransportError.
func (c *Client) GetJSON(ctx context.Context, cfg RequestConfig, out any) error {
	body, status, err := c.DoRequest(ctx, cfg)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return apierrors.NewUpstreamHTTPError(status, cfg.URL, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apierrors.NewTransportError("decode", cfg.URL, fmt.Errorf("invalid JSON response: %w", err))
	}

	return nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// back up to a rune boundary so the message stays valid UTF-8
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// newHTTPClient creates an HTTP client with pooled transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
