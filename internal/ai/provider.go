package ai

import (
	"context"
	"errors"
)

var ErrProviderFailed = errors.New("completion provider failed")

// Provider sends a prompt to a text-completion backend and returns the
// candidate completions in provider order. A request the provider rejects as
// invalid yields an empty slice and a nil error.
type Provider interface {
	Complete(ctx context.Context, prompt string, s Sampling) ([]string, error)
}

// Sampling holds the generation parameters sent with every completion.
// It is a value: presets derive a copy and leave the base untouched.
type Sampling struct {
	MaxTokens        int     `json:"maxTokens" toml:"max_tokens"`
	Temperature      float64 `json:"temperature" toml:"temperature"`
	TopP             float64 `json:"topP" toml:"top_p"`
	FrequencyPenalty float64 `json:"frequencyPenalty" toml:"frequency_penalty"`
	PresencePenalty  float64 `json:"presencePenalty" toml:"presence_penalty"`
	Stop             string  `json:"stop" toml:"stop"`
}

func DefaultSampling() Sampling {
	return Sampling{
		MaxTokens:   300,
		Temperature: 0.7,
		TopP:        1,
	}
}
