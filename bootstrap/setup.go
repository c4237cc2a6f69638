package bootstrap

import (
	"context"
	"fmt"

	"github.com/armankhl/smart-info-desk-agent/agents"
	"github.com/armankhl/smart-info-desk-agent/config"
	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/plugins/crypto"
	"github.com/armankhl/smart-info-desk-agent/plugins/movie"
	"github.com/armankhl/smart-info-desk-agent/plugins/news"
	"github.com/armankhl/smart-info-desk-agent/plugins/together"
	"github.com/armankhl/smart-info-desk-agent/plugins/weather"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

// App holds the initialized components of the application
type App struct {
	Desk     *agents.Desk
	Registry *tools.Registry
	LLM      plugins.LLMClient
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Inference endpoint
	log.Infof(ctx, "Using inference endpoint %s (model: %s)", cfg.AI.BaseURL, cfg.AI.Model)
	llm, err := together.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inference client: %w", err)
	}

	// 2. Init Tools Registry. Creating each client registers its tool; order
	// here is the order the model sees.
	registry := tools.NewRegistry()

	if _, err := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.HTTP.Timeout, registry); err != nil {
		return nil, err
	}
	if _, err := news.NewClient(cfg.News.APIKey, cfg.News.BaseURL, cfg.HTTP.Timeout, registry); err != nil {
		return nil, err
	}
	if _, err := crypto.NewClient(cfg.Crypto.APIKey, cfg.Crypto.BaseURL, cfg.HTTP.Timeout, registry); err != nil {
		return nil, err
	}
	if _, err := movie.NewClient(cfg.Movie.APIKey, cfg.Movie.BaseURL, cfg.HTTP.Timeout, registry); err != nil {
		return nil, err
	}

	for _, name := range missingProviderKeys(cfg) {
		log.Warnf(ctx, "%s is not set; that tool will report it is unavailable", name)
	}

	// 3. Init Desk
	desk := agents.NewDesk(llm, registry, agents.Options{
		Model:          cfg.AI.Model,
		SynthesisModel: cfg.AI.SynthesisModel,
		ToolChoice:     cfg.AI.ToolChoice,
	})

	return &App{
		Desk:     desk,
		Registry: registry,
		LLM:      llm,
	}, nil
}

// missingProviderKeys lists the unset required provider keys in tool order.
// CoinGecko works without a key and is not listed.
func missingProviderKeys(cfg *config.Config) []string {
	required := []struct {
		name string
		key  string
	}{
		{"OPENWEATHERMAP_API_KEY", cfg.Weather.APIKey},
		{"NEWSAPI_API_KEY", cfg.News.APIKey},
		{"TMDB_API_KEY", cfg.Movie.APIKey},
	}

	var missing []string
	for _, r := range required {
		if r.key == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}
