package movie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

const (
	// DefaultBaseURL is the TMDB v3 API
	DefaultBaseURL = "https://api.themoviedb.org/3"

	op = "movie"
)

// Client handles TMDB search requests
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new TMDB client and registers its tool
func NewClient(apiKey, baseURL string, timeout time.Duration, registry *tools.Registry) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: plugins.NewHTTPClient(timeout),
	}

	if registry != nil {
		if err := registry.Register(Spec, c.Execute); err != nil {
			return nil, fmt.Errorf("failed to register movie tool: %w", err)
		}
	}
	return c, nil
}

// Summary is the best search match for a title
type Summary struct {
	Title    string
	Overview string
}

// SearchMovie returns the first search result for a title. Its bool result is
// false when TMDB has no match.
func (c *Client) SearchMovie(ctx context.Context, title string) (*Summary, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false, fmt.Errorf("%w: title is required", plugins.ErrInvalidInput)
	}
	if c.APIKey == "" {
		return nil, false, plugins.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("api_key", c.APIKey)
	query.Set("query", title)

	body, err := plugins.GetJSON(ctx, c.HTTPClient, op, c.BaseURL, "/search/movie", query, nil)
	if err != nil {
		return nil, false, err
	}

	result := gjson.GetBytes(body, "results.0")
	if !result.Exists() {
		return nil, false, nil
	}

	summary := &Summary{
		Title:    "N/A",
		Overview: "No summary available.",
	}
	if v := result.Get("title"); v.Exists() && v.Type != gjson.Null {
		summary.Title = v.String()
	}
	if v := result.Get("overview"); v.Exists() && v.Type != gjson.Null {
		summary.Overview = v.String()
	}
	return summary, true, nil
}
