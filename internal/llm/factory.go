package llm

import (
	"fmt"

	"github.com/katian28/ai-bootcamp/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownProvider, cfg.Provider)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = info.DefaultBaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%s: %w", info.Name, config.ErrMissingEndpoint)
	}
	if info.NeedsAPIKey && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", info.Name, config.ErrMissingCredential)
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil

	case "anthropic":
		return NewAnthropicProvider(baseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil

	default:
		// azure, openai, groq, openrouter and custom all speak the
		// chat completions protocol.
		return NewOpenAIProvider(cfg.Provider, baseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
	}
}
