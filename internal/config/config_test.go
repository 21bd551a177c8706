package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josemlopez/Write-Properly/internal/ai"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "PROVIDER", "OLLAMA_HOST", "OLLAMA_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"WP_CONFIG", "WP_MAX_TOKENS", "WP_TEMPERATURE", "WP_TOP_P",
		"WP_FREQUENCY_PENALTY", "WP_PRESENCE_PENALTY", "WP_STOP",
		"UI_USER", "UI_PASS", "REQUEST_TIMEOUT", "SESSION_TTL", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("defaults should load: %v", err)
	}
	if c.Port != "3737" {
		t.Fatalf("expected port 3737, got %s", c.Port)
	}
	if c.Sampling != ai.DefaultSampling() {
		t.Fatalf("unexpected sampling %+v", c.Sampling)
	}
	if c.Model != "gpt-3.5-turbo-instruct" {
		t.Fatalf("unexpected model %s", c.Model)
	}
	if c.BasicAuth() {
		t.Fatal("basic auth should be off by default")
	}
	if c.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %s", c.Provider)
	}
}

func TestUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "bard")
	if _, err := FromEnv(); err == nil {
		t.Fatal("unknown provider should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WP_MAX_TOKENS", "512")
	t.Setenv("WP_TEMPERATURE", "0.2")
	t.Setenv("WP_STOP", "###")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("UI_USER", "ana")
	t.Setenv("UI_PASS", "secret")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Port != "8080" || c.OpenAIKey != "sk-test" {
		t.Fatalf("unexpected port/key %s %s", c.Port, c.OpenAIKey)
	}
	if c.Sampling.MaxTokens != 512 || c.Sampling.Temperature != 0.2 || c.Sampling.Stop != "###" {
		t.Fatalf("unexpected sampling %+v", c.Sampling)
	}
	if c.Sampling.TopP != 1 {
		t.Fatalf("untouched fields should keep defaults, got %+v", c.Sampling)
	}
	if c.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", c.RequestTimeout)
	}
	if !c.BasicAuth() {
		t.Fatal("basic auth should be on when both credentials are set")
	}
}

func TestEnvInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("WP_MAX_TOKENS", "lots")
	t.Setenv("SESSION_TTL", "forever")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("invalid values should fail")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "writeproperly.toml")
	content := `
port = "9000"
model = "davinci-002"
provider = "ollama"
ollama_model = "mistral"

[sampling]
max_tokens = 200
presence_penalty = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("PORT", "9100")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model != "davinci-002" {
		t.Fatalf("model should come from file, got %s", c.Model)
	}
	if c.Provider != ProviderOllama || c.OllamaModel != "mistral" {
		t.Fatalf("provider settings should come from file, got %s %s", c.Provider, c.OllamaModel)
	}
	if c.OllamaHost != "http://localhost:11434" {
		t.Fatalf("ollama host should keep default, got %s", c.OllamaHost)
	}
	if c.Port != "9100" {
		t.Fatalf("env should win over file, got %s", c.Port)
	}
	if c.Sampling.MaxTokens != 200 || c.Sampling.PresencePenalty != 0.5 {
		t.Fatalf("file sampling not applied: %+v", c.Sampling)
	}
	if c.Sampling.Temperature != 0.7 || c.Sampling.TopP != 1 {
		t.Fatalf("keys missing from file should keep defaults: %+v", c.Sampling)
	}
}

func TestLoadFileFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("model = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("WP_CONFIG", path)

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model != "x" {
		t.Fatalf("expected model from WP_CONFIG file, got %s", c.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing config file should fail")
	}
}
