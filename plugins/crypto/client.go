package crypto

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
	// DefaultBaseURL is the CoinGecko public API
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	op = "crypto"

	demoKeyHeader = "x-cg-demo-api-key"
)

// Client handles CoinGecko simple-price requests. The public API works
// without a key; a demo key only raises the rate limit.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new CoinGecko client and registers its tool
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
			return nil, fmt.Errorf("failed to register crypto tool: %w", err)
		}
	}
	return c, nil
}

// PriceUSD returns the USD price of a coin by its CoinGecko id
func (c *Client) PriceUSD(ctx context.Context, coinID string) (float64, error) {
	id := strings.ToLower(strings.TrimSpace(coinID))
	if id == "" {
		return 0, fmt.Errorf("%w: coin_id is required", plugins.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("ids", id)
	query.Set("vs_currencies", "usd")

	var header http.Header
	if c.APIKey != "" {
		header = http.Header{}
		header.Set(demoKeyHeader, c.APIKey)
	}

	body, err := plugins.GetJSON(ctx, c.HTTPClient, op, c.BaseURL, "/simple/price", query, header)
	if err != nil {
		return 0, err
	}

	path := gjson.Escape(id) + ".usd"
	price := gjson.GetBytes(body, path)
	if price.Type != gjson.Number {
		return 0, &tools.MalformedResponseError{Op: op, Field: id + ".usd"}
	}
	return price.Float(), nil
}
