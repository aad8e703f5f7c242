package engine

import (
	"context"
	"errors"
	"fmt"
)

// FallbackEngine attempts a primary engine first and falls back on error.
// Context cancellation is never masked by a fallback attempt.
type FallbackEngine struct {
	primary  Engine
	fallback Engine
}

func NewFallbackEngine(primary, fallback Engine) *FallbackEngine {
	return &FallbackEngine{primary: primary, fallback: fallback}
}

func (e *FallbackEngine) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if e == nil || e.primary == nil {
		if e != nil && e.fallback != nil {
			return e.fallback.Complete(ctx, req)
		}
		return "", errors.New("fallback engine misconfigured")
	}

	text, err := e.primary.Complete(ctx, req)
	if err == nil {
		return text, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}
	if e.fallback == nil {
		return "", err
	}
	fallbackText, fallbackErr := e.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary engine error: %w; fallback engine error: %v", err, fallbackErr)
	}
	return fallbackText, nil
}
