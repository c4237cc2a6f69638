package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

const (
	// DefaultBaseURL is the NewsAPI v2 endpoint
	DefaultBaseURL = "https://newsapi.org/v2"

	op = "news"
)

// Client handles NewsAPI requests
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new NewsAPI client and registers its tool
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
			return nil, fmt.Errorf("failed to register news tool: %w", err)
		}
	}
	return c, nil
}

// Headline is the top article for a country
type Headline struct {
	CountryCode string
	Title       string
	Source      string
}

// NormalizeCountryCode upper-cases a code and checks it names an
// ISO 3166-1 alpha-2 country.
func NormalizeCountryCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", fmt.Errorf("%w: %q is not a 2-letter country code", plugins.ErrInvalidInput, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q is not a 2-letter country code", plugins.ErrInvalidInput, code)
		}
	}

	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", fmt.Errorf("%w: %q is not a known country code", plugins.ErrInvalidInput, code)
	}
	return code, nil
}

// TopHeadline returns the first top headline for a country. Its bool result
// is false when the provider has no articles for the country.
func (c *Client) TopHeadline(ctx context.Context, countryCode string) (*Headline, bool, error) {
	code, err := NormalizeCountryCode(countryCode)
	if err != nil {
		return nil, false, err
	}
	if c.APIKey == "" {
		return nil, false, plugins.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("country", strings.ToLower(code))
	query.Set("apiKey", c.APIKey)
	query.Set("pageSize", "1")

	body, err := plugins.GetJSON(ctx, c.HTTPClient, op, c.BaseURL, "/top-headlines", query, nil)
	if err != nil {
		return nil, false, err
	}

	article := gjson.GetBytes(body, "articles.0")
	if !article.Exists() {
		return &Headline{CountryCode: code}, false, nil
	}

	headline := &Headline{
		CountryCode: code,
		Title:       "No title available",
		Source:      "Unknown source",
	}
	if title := article.Get("title"); title.Exists() && title.Type != gjson.Null {
		headline.Title = title.String()
	}
	if source := article.Get("source.name"); source.Exists() && source.Type != gjson.Null {
		headline.Source = source.String()
	}
	return headline, true, nil
}
