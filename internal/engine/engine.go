package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CompletionRequest is the normalized request sent to the generation engine.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Engine produces answer text from an assembled prompt. Implementations
// must be safe for concurrent use across sessions.
type Engine interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Config controls engine construction.
type Config struct {
	Mode       string
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
}

// NewEngine builds the configured engine variant and reports the resolved
// mode. In auto mode a configured API key selects the hosted engine chained
// to the mock, so a hosted outage degrades to deterministic local replies;
// without a key the mock serves alone. Explicit openai mode runs unchained so
// hosted failures stay visible.
func NewEngine(cfg Config) (Engine, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewFallbackEngine(NewOpenAIEngine(cfg), NewMockEngine()), "openai+mock", nil
		}
		return NewMockEngine(), "mock", nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, "", errors.New("engine API key is required for openai mode")
		}
		return NewOpenAIEngine(cfg), "openai", nil
	case "mock":
		return NewMockEngine(), "mock", nil
	default:
		return nil, "", fmt.Errorf("unsupported engine mode %q", cfg.Mode)
	}
}
