package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cooltech/alex/internal/engine"
	"github.com/cooltech/alex/internal/memory"
	"github.com/cooltech/alex/internal/retrieval"
)

// Generation defaults match the tuning the persona was written for: a high
// temperature for varied phrasing, a modest token cap for chat-sized answers.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.8
)

// Generator produces catalog-grounded answers: retrieve relevant chunks,
// assemble the prompt, run the completion engine.
type Generator struct {
	retriever   retrieval.Retriever
	engine      engine.Engine
	topK        int
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

type GeneratorParams struct {
	Retriever   retrieval.Retriever
	Engine      engine.Engine
	TopK        int
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

func NewGenerator(p GeneratorParams) *Generator {
	if p.TopK <= 0 {
		p.TopK = retrieval.DefaultTopK
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = DefaultMaxTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = DefaultTemperature
	}
	return &Generator{
		retriever:   p.Retriever,
		engine:      p.Engine,
		topK:        p.TopK,
		maxTokens:   p.MaxTokens,
		temperature: p.Temperature,
		timeout:     p.Timeout,
	}
}

// Generate answers the question against the catalog and transcript. Any
// failure, retrieval or completion, is returned as-is; the caller decides
// how to degrade.
func (g *Generator) Generate(ctx context.Context, question string, history []memory.TurnRecord) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	chunks, err := g.retriever.Retrieve(ctx, question, g.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve catalog context: %w", err)
	}

	answer, err := g.engine.Complete(ctx, engine.CompletionRequest{
		Prompt:      buildPrompt(question, chunks, history),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("complete: empty answer")
	}
	return strings.TrimSpace(answer), nil
}
