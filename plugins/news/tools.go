package news

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

// Spec is the get_top_news tool as shown to the model
var Spec = tools.Spec{
	Name:        "get_top_news",
	Description: "Fetches the top news headline for a given country using its 2-letter ISO code.",
	Parameters: []tools.Parameter{
		{
			Name:        "country_code",
			Type:        "string",
			Description: "The 2-letter ISO 3166-1 country code, e.g. 'us' for the United States or 'gb' for the United Kingdom",
			Required:    true,
		},
	},
}

// Execute adapts the registry's argument map to Lookup
func (c *Client) Execute(ctx context.Context, args map[string]interface{}) string {
	code, _ := args["country_code"].(string)
	return c.Lookup(ctx, code)
}

// Lookup returns the top headline as a sentence. It never fails.
func (c *Client) Lookup(ctx context.Context, countryCode string) string {
	log.Debugf(ctx, "NewsTool executing for %q", countryCode)

	headline, found, err := c.TopHeadline(ctx, countryCode)
	switch {
	case errors.Is(err, plugins.ErrMissingAPIKey):
		return "News lookups are not available: NEWSAPI_API_KEY is not configured."
	case errors.Is(err, plugins.ErrInvalidInput):
		return fmt.Sprintf("Sorry, '%s' is not a valid 2-letter country code.", strings.TrimSpace(countryCode))
	case err != nil:
		log.Warnf(ctx, "NewsTool failed: %v", err)
		return fmt.Sprintf("Error fetching news data: %v", err)
	case !found:
		return fmt.Sprintf("Sorry, I couldn't find any top news for %s.", headline.CountryCode)
	}

	return fmt.Sprintf("Top news from %s: '%s' (Source: %s)", headline.CountryCode, headline.Title, headline.Source)
}
