package weather

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
	// DefaultBaseURL is the OpenWeatherMap current-weather API
	DefaultBaseURL = "http://api.openweathermap.org/data/2.5"

	op = "weather"
)

// Client handles OpenWeatherMap API requests
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new OpenWeatherMap client and registers its tool
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
			return nil, fmt.Errorf("failed to register weather tool: %w", err)
		}
	}
	return c, nil
}

// Report is the subset of the current-weather response the tool reports
type Report struct {
	Location    string
	Description string
	Temperature float64
}

// CurrentWeather fetches the current weather for a location in metric units
func (c *Client) CurrentWeather(ctx context.Context, location string) (*Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", plugins.ErrInvalidInput)
	}
	if c.APIKey == "" {
		return nil, plugins.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.APIKey)
	query.Set("units", "metric")

	body, err := plugins.GetJSON(ctx, c.HTTPClient, op, c.BaseURL, "/weather", query, nil)
	if err != nil {
		return nil, err
	}

	for _, section := range []string{"weather", "main"} {
		if !gjson.GetBytes(body, section).Exists() {
			return nil, &tools.MalformedResponseError{Op: op, Field: section}
		}
	}

	desc := gjson.GetBytes(body, "weather.0.description")
	if !desc.Exists() {
		return nil, &tools.MalformedResponseError{Op: op, Field: "weather.0.description"}
	}
	temp := gjson.GetBytes(body, "main.temp")
	if temp.Type != gjson.Number {
		return nil, &tools.MalformedResponseError{Op: op, Field: "main.temp"}
	}

	return &Report{
		Location:    location,
		Description: desc.String(),
		Temperature: temp.Float(),
	}, nil
}
