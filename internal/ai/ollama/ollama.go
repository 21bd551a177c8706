package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/ai"
)

const (
	DefaultHost    = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 60 * time.Second
)

// Client uses Ollama's raw /api/generate endpoint so the prompt reaches the
// model without a chat template around it.
type Client struct {
	Host  string
	Model string
	http  *http.Client
}

// New returns a client whose HTTP calls give up after timeout, or
// DefaultTimeout when timeout is not positive.
func New(host, model string, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Host:  strings.TrimRight(host, "/"),
		Model: model,
		http:  &http.Client{Timeout: timeout},
	}
}

type generateOptions struct {
	NumPredict       int      `json:"num_predict"`
	Temperature      float64  `json:"temperature"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	Stop             []string `json:"stop,omitempty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Raw     bool            `json:"raw"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

func (c *Client) Complete(ctx context.Context, prompt string, s ai.Sampling) ([]string, error) {
	payload := generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Raw:    true,
		Options: generateOptions{
			NumPredict:       s.MaxTokens,
			Temperature:      s.Temperature,
			TopP:             s.TopP,
			FrequencyPenalty: s.FrequencyPenalty,
			PresencePenalty:  s.PresencePenalty,
		},
	}
	if s.Stop != "" {
		payload.Options.Stop = []string{s.Stop}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: marshal request: %w", ai.ErrProviderFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Host+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: create request: %w", ai.ErrProviderFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: %w", ai.ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		log.Warn().Str("model", c.Model).Msg("completion rejected as invalid request")
		return []string{}, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: ollama status %d", ai.ErrProviderFailed, resp.StatusCode)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: ollama: decode response: %w", ai.ErrProviderFailed, err)
	}
	log.Debug().Str("model", c.Model).Str("prompt", prompt).Str("response", out.Response).Msg("completion")
	if out.Response == "" {
		return []string{}, nil
	}
	return []string{out.Response}, nil
}
