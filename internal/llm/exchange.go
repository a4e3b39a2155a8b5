package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Exchanger sends one system+user message pair and returns the model's text.
type Exchanger interface {
	Exchange(ctx context.Context, system, user string) (string, error)
}

// ExchangerFunc adapts a plain function to Exchanger.
type ExchangerFunc func(ctx context.Context, system, user string) (string, error)

func (f ExchangerFunc) Exchange(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// ProviderExchanger runs exchanges against a Provider with a fixed model.
type ProviderExchanger struct {
	provider Provider
	model    string
	logger   *slog.Logger
}

// NewExchanger binds a provider to the model used for every exchange.
func NewExchanger(provider Provider, model string, logger *slog.Logger) *ProviderExchanger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderExchanger{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Model returns the model this exchanger requests.
func (e *ProviderExchanger) Model() string {
	return e.model
}

// Exchange performs a single blocking round trip. Errors carry the exchange
// ID that also appears in the debug log.
func (e *ProviderExchanger) Exchange(ctx context.Context, system, user string) (string, error) {
	id := uuid.NewString()
	start := time.Now()

	resp, err := e.provider.Complete(ctx, NewRequest(e.model, system, user))
	if err == nil && resp.Content == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		return "", fmt.Errorf("exchange %s with %s/%s: %w", id, e.provider.Name(), e.model, err)
	}

	e.logger.Debug("exchange complete",
		"exchange_id", id,
		"provider", e.provider.Name(),
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"latency", time.Since(start),
	)

	return resp.Content, nil
}
