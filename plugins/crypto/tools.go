package crypto

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

// Spec is the get_crypto_price tool as shown to the model
var Spec = tools.Spec{
	Name:        "get_crypto_price",
	Description: "Fetches the current price of a cryptocurrency in USD using its CoinGecko ID.",
	Parameters: []tools.Parameter{
		{
			Name:        "coin_id",
			Type:        "string",
			Description: "The lowercase CoinGecko ID of the coin, e.g. 'bitcoin' or 'ethereum'",
			Required:    true,
		},
	},
}

var printer = message.NewPrinter(language.English)

// FormatUSD renders a price with thousands separators and two decimals
func FormatUSD(price float64) string {
	return printer.Sprintf("$%.2f USD", price)
}

// Execute adapts the registry's argument map to Lookup
func (c *Client) Execute(ctx context.Context, args map[string]interface{}) string {
	coinID, _ := args["coin_id"].(string)
	return c.Lookup(ctx, coinID)
}

// Lookup returns the coin's price as a sentence. It never fails.
func (c *Client) Lookup(ctx context.Context, coinID string) string {
	log.Debugf(ctx, "CryptoTool executing for %q", coinID)
	coinID = strings.TrimSpace(coinID)

	price, err := c.PriceUSD(ctx, coinID)
	if err != nil {
		log.Warnf(ctx, "CryptoTool failed: %v", err)
		switch {
		case errors.Is(err, plugins.ErrInvalidInput):
			return "Please tell me which cryptocurrency you want the price for."
		case errors.Is(err, tools.ErrMalformedResponse):
			return fmt.Sprintf("Sorry, I couldn't find the price for the cryptocurrency ID '%s'.", coinID)
		default:
			return fmt.Sprintf("Error fetching crypto price: %v", err)
		}
	}

	return fmt.Sprintf("The current price of %s is %s.", coinID, FormatUSD(price))
}
