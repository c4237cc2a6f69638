package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armankhl/smart-info-desk-agent/log"
)

var configEnvVars = []string{
	"INFERENCE_API_KEY", "TOGETHER_API_KEY", "INFERENCE_BASE_URL", "INFERENCE_MODEL",
	"SYNTHESIS_MODEL", "TOOL_CHOICE", "INFERENCE_TIMEOUT", "HTTP_TIMEOUT", "LOG_LEVEL",
	"OPENWEATHERMAP_API_KEY", "OPENWEATHERMAP_BASE_URL", "NEWSAPI_API_KEY", "NEWSAPI_BASE_URL",
	"COINGECKO_API_KEY", "COINGECKO_BASE_URL", "TMDB_API_KEY", "TMDB_BASE_URL",
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		if orig, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, orig) })
		}
		os.Unsetenv(name)
	}
}

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "https://api.together.xyz/v1", cfg.AI.BaseURL)
		assert.Equal(t, "mistralai/Mixtral-8x7B-Instruct-v0.1", cfg.AI.Model)
		assert.Equal(t, cfg.AI.Model, cfg.AI.SynthesisModel)
		assert.Equal(t, ToolChoiceAuto, cfg.AI.ToolChoice)
		assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
		assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "http://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
		assert.Equal(t, "https://newsapi.org/v2", cfg.News.BaseURL)
		assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Crypto.BaseURL)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.Movie.BaseURL)
		assert.Empty(t, cfg.Weather.APIKey)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INFERENCE_API_KEY", "inference-key")
		t.Setenv("TOOL_CHOICE", "required")
		t.Setenv("HTTP_TIMEOUT", "3s")
		t.Setenv("OPENWEATHERMAP_API_KEY", "weather-key")
		t.Setenv("NEWSAPI_API_KEY", "news-key")
		t.Setenv("TMDB_API_KEY", "tmdb-key")
		t.Setenv("SYNTHESIS_MODEL", "small-model")

		cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "inference-key", cfg.AI.APIKey)
		assert.Equal(t, ToolChoiceRequired, cfg.AI.ToolChoice)
		assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "weather-key", cfg.Weather.APIKey)
		assert.Equal(t, "news-key", cfg.News.APIKey)
		assert.Equal(t, "tmdb-key", cfg.Movie.APIKey)
		assert.Equal(t, "small-model", cfg.AI.SynthesisModel)
	})

	t.Run("LegacyTogetherKey", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOGETHER_API_KEY", "together-key")

		cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "together-key", cfg.AI.APIKey)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEWSAPI_API_KEY", "env-news-key")

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `ai:
  api_key: file-key
  tool_choice: required
weather:
  api_key: file-weather-key
  base_url: http://localhost:9999
news:
  api_key: file-news-key
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.AI.APIKey)
		assert.Equal(t, ToolChoiceRequired, cfg.AI.ToolChoice)
		assert.Equal(t, "file-weather-key", cfg.Weather.APIKey)
		assert.Equal(t, "http://localhost:9999", cfg.Weather.BaseURL)
		assert.Equal(t, "env-news-key", cfg.News.APIKey)
		assert.Equal(t, "https://newsapi.org/v2", cfg.News.BaseURL)
	})

	t.Run("BrokenConfigFile", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INFERENCE_API_KEY", "env-key")

		var buf bytes.Buffer
		log.Init("warn")
		log.SetOutput(&buf)
		defer log.Init("warn")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ai:\n  api_key: [unterminated\n"), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.AI.APIKey)
		assert.Contains(t, buf.String(), "Ignoring config file "+path)
	})

	t.Run("MissingConfigFileIsQuiet", func(t *testing.T) {
		clearEnv(t)

		var buf bytes.Buffer
		log.Init("warn")
		log.SetOutput(&buf)
		defer log.Init("warn")

		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AI:   AIConfig{APIKey: "key", ToolChoice: ToolChoiceAuto, Timeout: time.Second},
			HTTP: HTTPConfig{Timeout: time.Second},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.AI.APIKey = ""
	assert.ErrorContains(t, cfg.Validate(), "INFERENCE_API_KEY")

	cfg = valid()
	cfg.AI.ToolChoice = "none"
	assert.ErrorContains(t, cfg.Validate(), "invalid TOOL_CHOICE")

	cfg = valid()
	cfg.AI.ToolChoice = ToolChoiceRequired
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.HTTP.Timeout = 0
	assert.Error(t, cfg.Validate())
}
