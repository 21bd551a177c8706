package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/ai"
)

const DefaultModel = "gpt-3.5-turbo-instruct"

var ErrMissingKey = errors.New("missing OPENAI_API_KEY")

// Client talks to the legacy text-completions endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	client  sdk.Client
}

func New(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		client:  sdk.NewClient(opts...),
	}
}

func (c *Client) Complete(ctx context.Context, prompt string, s ai.Sampling) ([]string, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: %w", ai.ErrProviderFailed, ErrMissingKey)
	}

	params := sdk.CompletionNewParams{
		Model:            sdk.CompletionNewParamsModel(c.Model),
		Prompt:           sdk.CompletionNewParamsPromptUnion{OfString: sdk.String(prompt)},
		MaxTokens:        sdk.Int(int64(s.MaxTokens)),
		Temperature:      sdk.Float(s.Temperature),
		TopP:             sdk.Float(s.TopP),
		FrequencyPenalty: sdk.Float(s.FrequencyPenalty),
		PresencePenalty:  sdk.Float(s.PresencePenalty),
	}
	if s.Stop != "" {
		params.Stop = sdk.CompletionNewParamsStopUnion{OfString: sdk.String(s.Stop)}
	}

	resp, err := c.client.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			log.Warn().Str("model", c.Model).Str("reason", apiErr.Message).Msg("completion rejected as invalid request")
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ai.ErrProviderFailed, err)
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, ch := range resp.Choices {
		choices = append(choices, ch.Text)
	}
	log.Debug().Str("model", c.Model).Str("prompt", prompt).Strs("choices", choices).Msg("completion")
	return choices, nil
}
