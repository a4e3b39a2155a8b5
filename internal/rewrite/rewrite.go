// Package rewrite turns template operations into model exchanges: generation
// returns the model's text, judging parses it into a verdict.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katian28/ai-bootcamp/internal/llm"
	"github.com/katian28/ai-bootcamp/internal/prompts"
)

// Request asks for one generated variant of Text.
type Request struct {
	Action Action
	Text   string
	// Tone is only used by ActionTone and is passed through unvalidated.
	Tone string
}

// Orchestrator renders templates and dispatches them. It holds no mutable
// state and is safe for concurrent use.
type Orchestrator struct {
	templates *prompts.Set
	generator llm.Exchanger
	judge     llm.Exchanger
	logger    *slog.Logger
}

// New checks that templates covers every operation and returns an
// orchestrator. A nil judge reuses generator.
func New(templates *prompts.Set, generator, judge llm.Exchanger, logger *slog.Logger) (*Orchestrator, error) {
	if templates == nil {
		return nil, errors.New("rewrite: template set is required")
	}
	if generator == nil {
		return nil, errors.New("rewrite: exchanger is required")
	}
	if judge == nil {
		judge = generator
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := templates.Require(Operations()...); err != nil {
		return nil, fmt.Errorf("rewrite: %w", err)
	}

	return &Orchestrator{
		templates: templates,
		generator: generator,
		judge:     judge,
		logger:    logger,
	}, nil
}

// Generate returns the rewritten text. ok is false when the action is
// unsupported or the exchange failed; both are logged. A non-nil error means
// the templates could not be rendered.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (text string, ok bool, err error) {
	if !req.Action.Valid() {
		o.logger.Warn("generate skipped",
			"error", &UnsupportedActionError{Action: string(req.Action)},
		)
		return "", false, nil
	}

	values := map[string]any{keyText: req.Text}
	if req.Action == ActionTone {
		values[keyTone] = req.Tone
	}

	return o.exchange(ctx, o.generator, req.Action.Operation(), values)
}

// exchange renders op's system and user templates and runs one exchange.
// Exchange failures are logged and reported as ok == false.
func (o *Orchestrator) exchange(ctx context.Context, ex llm.Exchanger, op string, values map[string]any) (string, bool, error) {
	system, err := o.templates.Resolve(op, prompts.RoleSystem, values)
	if err != nil {
		return "", false, err
	}
	user, err := o.templates.Resolve(op, prompts.RoleUser, values)
	if err != nil {
		return "", false, err
	}

	start := time.Now()
	out, err := ex.Exchange(ctx, system, user)
	if err != nil {
		o.logger.Error("exchange failed",
			"operation", op,
			"latency", time.Since(start),
			"error", err,
		)
		return "", false, nil
	}

	o.logger.Info("exchange complete",
		"operation", op,
		"latency", time.Since(start),
		"chars", len(out),
	)
	return out, true, nil
}
