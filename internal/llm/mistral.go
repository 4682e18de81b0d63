package llm

import "fmt"

const (
	defaultMistralBaseURL = "https://api.mistral.ai/v1"

	// mistralTemperature keeps curriculum output stable across calls.
	mistralTemperature = 0.2
)

// mistralModels maps friendly names to Mistral model IDs.
var mistralModels = map[string]string{
	"mistral-small":  "mistral-small-latest",
	"mistral-medium": "mistral-medium-latest",
	"mistral-large":  "mistral-large-latest",
}

// MistralProvider targets Mistral's OpenAI-compatible chat completions API.
type MistralProvider struct {
	*OpenAIProvider
}

// NewMistralProvider creates a provider targeting the Mistral API.
func NewMistralProvider(cfg MistralConfig) (*MistralProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultMistralBaseURL
	}

	inner := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	})
	inner.model = resolveModel(cfg.Model, mistralModels)
	inner.models = mistralModels
	inner.name = ProviderMistral
	inner.jsonMode = jsonModeObject
	inner.temperature = mistralTemperature

	return &MistralProvider{OpenAIProvider: inner}, nil
}
