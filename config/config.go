package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/armankhl/smart-info-desk-agent/log"
)

// Tool-choice modes accepted by the inference endpoint for the selection call
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig       `yaml:"ai"`
	Weather ProviderConfig `yaml:"weather"`
	News    ProviderConfig `yaml:"news"`
	Crypto  ProviderConfig `yaml:"crypto"`
	Movie   ProviderConfig `yaml:"movie"`
	HTTP    HTTPConfig     `yaml:"http"`
	Log     LogConfig      `yaml:"log"`
}

// AIConfig configures the inference endpoint. LegacyAPIKey keeps
// TOGETHER_API_KEY working for existing .env files.
type AIConfig struct {
	APIKey         string        `yaml:"api_key" env:"INFERENCE_API_KEY"`
	LegacyAPIKey   string        `yaml:"-" env:"TOGETHER_API_KEY"`
	BaseURL        string        `yaml:"base_url" env:"INFERENCE_BASE_URL" env-default:"https://api.together.xyz/v1"`
	Model          string        `yaml:"model" env:"INFERENCE_MODEL" env-default:"mistralai/Mixtral-8x7B-Instruct-v0.1"`
	SynthesisModel string        `yaml:"synthesis_model" env:"SYNTHESIS_MODEL"`
	ToolChoice     string        `yaml:"tool_choice" env:"TOOL_CHOICE" env-default:"auto"`
	Timeout        time.Duration `yaml:"timeout" env:"INFERENCE_TIMEOUT" env-default:"60s"`
}

// ProviderConfig holds the credential and endpoint of one data provider
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"warn"`
}

// providerEnv lists the env vars of each provider. cleanenv cannot put
// different env names on fields of a struct type shared by several sections.
type providerEnv struct {
	WeatherKey string `env:"OPENWEATHERMAP_API_KEY"`
	WeatherURL string `env:"OPENWEATHERMAP_BASE_URL" env-default:"http://api.openweathermap.org/data/2.5"`
	NewsKey    string `env:"NEWSAPI_API_KEY"`
	NewsURL    string `env:"NEWSAPI_BASE_URL" env-default:"https://newsapi.org/v2"`
	CryptoKey  string `env:"COINGECKO_API_KEY"`
	CryptoURL  string `env:"COINGECKO_BASE_URL" env-default:"https://api.coingecko.com/api/v3"`
	MovieKey   string `env:"TMDB_API_KEY"`
	MovieURL   string `env:"TMDB_BASE_URL" env-default:"https://api.themoviedb.org/3"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile is Load with an explicit config file path
func LoadFile(path string) (*Config, error) {
	var cfg Config

	// A missing or unreadable file falls back to env vars only
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			log.Warnf(context.Background(), "Ignoring config file %s: %v", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	var env providerEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("failed to read provider env config: %w", err)
	}
	mergeProvider(&cfg.Weather, env.WeatherKey, env.WeatherURL)
	mergeProvider(&cfg.News, env.NewsKey, env.NewsURL)
	mergeProvider(&cfg.Crypto, env.CryptoKey, env.CryptoURL)
	mergeProvider(&cfg.Movie, env.MovieKey, env.MovieURL)

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = cfg.AI.LegacyAPIKey
	}
	if cfg.AI.SynthesisModel == "" {
		cfg.AI.SynthesisModel = cfg.AI.Model
	}

	return &cfg, nil
}

// mergeProvider lets a set env key win over the file, while the default URL
// only fills in what the file left empty.
func mergeProvider(p *ProviderConfig, key, url string) {
	if key != "" {
		p.APIKey = key
	}
	if p.BaseURL == "" {
		p.BaseURL = url
	}
}

// Validate reports misconfiguration that must stop the process at startup
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("INFERENCE_API_KEY (or TOGETHER_API_KEY) must be set")
	}
	switch c.AI.ToolChoice {
	case ToolChoiceAuto, ToolChoiceRequired:
	default:
		return fmt.Errorf("invalid TOOL_CHOICE %q: must be %q or %q", c.AI.ToolChoice, ToolChoiceAuto, ToolChoiceRequired)
	}
	if c.AI.Timeout <= 0 || c.HTTP.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}
