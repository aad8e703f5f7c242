package engine

import (
	"context"
	"strings"
	"sync"
)

// MockEngine provides deterministic local replies when no hosted engine is
// configured. It is also the test double: Reply and Err override behavior,
// and Calls counts invocations.
type MockEngine struct {
	mu    sync.Mutex
	Reply func(req CompletionRequest) (string, error)
	Calls int
}

func NewMockEngine() *MockEngine { return &MockEngine{} }

func (e *MockEngine) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	e.mu.Lock()
	e.Calls++
	reply := e.Reply
	e.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if reply != nil {
		return reply(req)
	}
	return buildMockAnswer(req.Prompt), nil
}

// CallCount reports how many times Complete ran.
func (e *MockEngine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Calls
}

func buildMockAnswer(prompt string) string {
	// Echo the question back so local runs show it made it through the
	// pipeline intact.
	question := ""
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Customer Question:"); ok {
			question = strings.TrimSpace(rest)
		}
	}
	if question == "" {
		lines := strings.Split(strings.TrimSpace(prompt), "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			if strings.TrimSpace(lines[i]) != "" {
				question = strings.TrimSpace(lines[i])
				break
			}
		}
	}
	if question == "" {
		return "Happy to help with anything refrigerator-related."
	}
	return "Here's what I can tell you about that: our catalog has a great match. (" + question + ")"
}
