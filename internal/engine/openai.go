package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cooltech/alex/internal/reliability"
)

const (
	// DefaultBaseURL targets the Groq OpenAI-compatible endpoint used by the
	// reference deployment. Any compatible endpoint works.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	retryBackoffBase = 250 * time.Millisecond
	retryBackoffCap  = 2 * time.Second
)

// OpenAIEngine calls an OpenAI-compatible chat-completion endpoint.
type OpenAIEngine struct {
	client     *openai.Client
	model      string
	maxRetries int
}

func NewOpenAIEngine(cfg Config) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if url := strings.TrimSpace(cfg.BaseURL); url != "" {
		clientCfg.BaseURL = url
	} else {
		clientCfg.BaseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &OpenAIEngine{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: retries,
	}
}

func (e *OpenAIEngine) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := e.client.CreateChatCompletion(ctx, chatReq)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("engine returned no choices")
			}
			text := strings.TrimSpace(resp.Choices[0].Message.Content)
			if text == "" {
				return "", errors.New("engine returned empty answer")
			}
			return text, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if attempt >= e.maxRetries || !isRetryable(err) {
			return "", fmt.Errorf("chat completion: %w", lastErr)
		}

		backoff := reliability.ExponentialBackoff(attempt, retryBackoffBase, retryBackoffCap)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return reliability.IsRetryableHTTPStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reliability.IsRetryableHTTPStatus(reqErr.HTTPStatusCode)
	}
	return false
}
