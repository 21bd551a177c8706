package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/josemlopez/Write-Properly/internal/ai"
	"github.com/josemlopez/Write-Properly/internal/ai/ollama"
	"github.com/josemlopez/Write-Properly/internal/ai/openai"
)

const DefaultPort = "3737"

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Port           string
	Provider       string
	OpenAIKey      string
	OpenAIBaseURL  string
	Model          string
	OllamaHost     string
	OllamaModel    string
	Sampling       ai.Sampling
	UIUser         string
	UIPass         string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	LogLevel       string
}

// File is the optional TOML configuration. Keys left out keep their defaults.
type File struct {
	Port        string      `toml:"port"`
	Provider    string      `toml:"provider"`
	Model       string      `toml:"model"`
	OllamaHost  string      `toml:"ollama_host"`
	OllamaModel string      `toml:"ollama_model"`
	Sampling    ai.Sampling `toml:"sampling"`
}

func Default() Config {
	return Config{
		Port:           DefaultPort,
		Provider:       ProviderOpenAI,
		Model:          openai.DefaultModel,
		OllamaHost:     ollama.DefaultHost,
		OllamaModel:    ollama.DefaultModel,
		Sampling:       ai.DefaultSampling(),
		RequestTimeout: 60 * time.Second,
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (or $WP_CONFIG), then environment variables.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		path = os.Getenv("WP_CONFIG")
	}
	if path != "" {
		if err := c.applyFile(path); err != nil {
			return c, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, nil
}

// FromEnv is Load without a config file.
func FromEnv() (Config, error) {
	c := Default()
	err := c.applyEnv()
	return c, err
}

func (c *Config) applyFile(path string) error {
	f := File{
		Port:        c.Port,
		Provider:    c.Provider,
		Model:       c.Model,
		OllamaHost:  c.OllamaHost,
		OllamaModel: c.OllamaModel,
		Sampling:    c.Sampling,
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	c.Port = f.Port
	c.Provider = f.Provider
	c.Model = f.Model
	c.OllamaHost = f.OllamaHost
	c.OllamaModel = f.OllamaModel
	c.Sampling = f.Sampling
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getenv("PORT", c.Port)
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.Model = getenv("OPENAI_MODEL", c.Model)
	c.Provider = getenv("PROVIDER", c.Provider)
	c.OllamaHost = getenv("OLLAMA_HOST", c.OllamaHost)
	c.OllamaModel = getenv("OLLAMA_MODEL", c.OllamaModel)
	c.Sampling.Stop = getenv("WP_STOP", c.Sampling.Stop)
	c.UIUser = os.Getenv("UI_USER")
	c.UIPass = os.Getenv("UI_PASS")
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)

	var errs []error
	errs = append(errs,
		getenvInt("WP_MAX_TOKENS", &c.Sampling.MaxTokens),
		getenvFloat("WP_TEMPERATURE", &c.Sampling.Temperature),
		getenvFloat("WP_TOP_P", &c.Sampling.TopP),
		getenvFloat("WP_FREQUENCY_PENALTY", &c.Sampling.FrequencyPenalty),
		getenvFloat("WP_PRESENCE_PENALTY", &c.Sampling.PresencePenalty),
		getenvDuration("REQUEST_TIMEOUT", &c.RequestTimeout),
		getenvDuration("SESSION_TTL", &c.SessionTTL),
	)
	if c.Provider != ProviderOpenAI && c.Provider != ProviderOllama {
		errs = append(errs, fmt.Errorf("PROVIDER: unknown provider %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderOllama))
	}
	return errors.Join(errs...)
}

// BasicAuth reports whether the UI should be behind basic auth.
func (c Config) BasicAuth() bool {
	return c.UIUser != "" && c.UIPass != ""
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, dst *int) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", k, v)
	}
	*dst = n
	return nil
}

func getenvFloat(k string, dst *float64) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid number %q", k, v)
	}
	*dst = f
	return nil
}

func getenvDuration(k string, dst *time.Duration) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", k, v)
	}
	*dst = d
	return nil
}
