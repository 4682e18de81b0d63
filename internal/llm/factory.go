package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry, metrics and logging
// middleware. A provider without a credential is not an error here: the
// returned Provider fails every call with *ErrProviderUnconfigured.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		var unconfigured *ErrProviderUnconfigured
		if errors.As(err, &unconfigured) {
			log.Warn("LLM provider has no API key; AI features will use fallbacks", "provider", cfg.Provider)
			return Unconfigured(cfg.Provider), nil
		}
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMistral:
		base, err = NewMistralProvider(cfg.Mistral)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → metrics → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	measured := WithMetrics(logged, cfg.Provider)
	retried := WithRetry(measured, cfg.Retry)

	return WithTimeout(retried, cfg.Provider, cfg.Timeout), nil
}

// unconfiguredProvider stands in for a provider whose credential is absent.
type unconfiguredProvider struct {
	name string
}

// Unconfigured returns a Provider that fails every call with
// *ErrProviderUnconfigured.
func Unconfigured(name string) Provider {
	return &unconfiguredProvider{name: name}
}

func (u *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnconfigured{Provider: u.name}
}

func (u *unconfiguredProvider) ModelID() string {
	return ""
}
