package weather

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

// Spec is the get_weather tool as shown to the model
var Spec = tools.Spec{
	Name:        "get_weather",
	Description: "Get the current weather in a given location",
	Parameters: []tools.Parameter{
		{
			Name:        "location",
			Type:        "string",
			Description: "The city and state, e.g. San Francisco, CA",
			Required:    true,
		},
	},
}

// Execute adapts the registry's argument map to Lookup
func (c *Client) Execute(ctx context.Context, args map[string]interface{}) string {
	location, _ := args["location"].(string)
	return c.Lookup(ctx, location)
}

// Lookup returns a one-sentence weather report, or a readable explanation of
// why there is none. It never fails.
func (c *Client) Lookup(ctx context.Context, location string) string {
	log.Debugf(ctx, "WeatherTool executing for %q", location)

	report, err := c.CurrentWeather(ctx, location)
	if err != nil {
		log.Warnf(ctx, "WeatherTool failed: %v", err)
		return describeError(location, err)
	}

	temp := strconv.FormatFloat(report.Temperature, 'f', -1, 64)
	return fmt.Sprintf("The current weather in %s is %s°C with %s.", report.Location, temp, report.Description)
}

func describeError(location string, err error) string {
	var malformed *tools.MalformedResponseError
	switch {
	case errors.Is(err, plugins.ErrMissingAPIKey):
		return "Weather lookups are not available: OPENWEATHERMAP_API_KEY is not configured."
	case errors.Is(err, plugins.ErrInvalidInput):
		return "Please tell me which location you want the weather for."
	case errors.As(err, &malformed) && (malformed.Field == "weather" || malformed.Field == "main"):
		return fmt.Sprintf("Sorry, I couldn't retrieve weather data for %s.", location)
	case errors.As(err, &malformed):
		return fmt.Sprintf("Could not parse weather data for %s. Please check the location name.", location)
	default:
		return fmt.Sprintf("Error fetching weather data: %v", err)
	}
}
