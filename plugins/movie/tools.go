package movie

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

// Spec is the get_movie_summary tool as shown to the model
var Spec = tools.Spec{
	Name:        "get_movie_summary",
	Description: "Fetches a brief summary of a movie by its title.",
	Parameters: []tools.Parameter{
		{
			Name:        "title",
			Type:        "string",
			Description: "The title of the movie, e.g. 'Inception'",
			Required:    true,
		},
	},
}

// Execute adapts the registry's argument map to Lookup
func (c *Client) Execute(ctx context.Context, args map[string]interface{}) string {
	title, _ := args["title"].(string)
	return c.Lookup(ctx, title)
}

// Lookup returns the movie's overview as a sentence
func (c *Client) Lookup(ctx context.Context, title string) string {
	log.Debugf(ctx, "MovieTool executing for %q", title)
	title = strings.TrimSpace(title)

	summary, found, err := c.SearchMovie(ctx, title)
	switch {
	case errors.Is(err, plugins.ErrMissingAPIKey):
		return "Movie lookups are not available: TMDB_API_KEY is not configured."
	case errors.Is(err, plugins.ErrInvalidInput):
		return "Please tell me which movie you want a summary of."
	case err != nil:
		log.Warnf(ctx, "MovieTool failed: %v", err)
		return fmt.Sprintf("Error fetching movie data: %v", err)
	case !found:
		return fmt.Sprintf("Sorry, I couldn't find a movie with the title '%s'.", title)
	}

	return fmt.Sprintf("Summary for '%s': %s", summary.Title, summary.Overview)
}
