// Package dragonball is a client for the public Dragon Ball API
// (https://dragonball-api.com) and the MCP tool wrappers built on it.
package dragonball

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/dragonball-mcp-server/internal/base"
)

const (
	// DefaultBaseURL is the Dragon Ball API endpoint
	DefaultBaseURL = "https://dragonball-api.com/api"
)

// Client provides access to the Dragon Ball API. Every call issues exactly
// one GET; nothing is cached between calls.
type Client struct {
	*base.Client
	baseURL string
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return base.WithTimeout(d)
}

// WithUserAgent sets the User-Agent sent to the API
func WithUserAgent(ua string) ClientOption {
	return base.WithUserAgent(ua)
}

// NewClient creates a new Dragon Ball API client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:  base.NewClient(opts...),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL returns the Client with a custom base URL (configuration and tests)
func (c *Client) WithBaseURL(u string) *Client {
	if u != "" {
		c.baseURL = strings.TrimRight(u, "/")
	}
	return c
}

// BaseURL returns the API base URL in use
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListCharacters fetches one page of the character listing.
func (c *Client) ListCharacters(ctx context.Context, page, limit int) (*CharacterPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s/characters?%s", c.baseURL, params.Encode())

	var result CharacterPage
	if err := c.GetJSON(ctx, base.RequestConfig{URL: reqURL, Endpoint: "characters"}, &result); err != nil {
		return nil, err
	}

	result.requestedPage = page
	return &result, nil
}

// GetCharacter fetches a character with its origin planet and transformations.
func (c *Client) GetCharacter(ctx context.Context, id int) (*CharacterDetail, error) {
	reqURL := fmt.Sprintf("%s/characters/%d", c.baseURL, id)

	var result CharacterDetail
	if err := c.GetJSON(ctx, base.RequestConfig{URL: reqURL, Endpoint: "character"}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
