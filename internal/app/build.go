package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/cooltech/alex/internal/assistant"
	"github.com/cooltech/alex/internal/catalog"
	"github.com/cooltech/alex/internal/config"
	"github.com/cooltech/alex/internal/engine"
	"github.com/cooltech/alex/internal/httpapi"
	"github.com/cooltech/alex/internal/intent"
	"github.com/cooltech/alex/internal/memory"
	"github.com/cooltech/alex/internal/observability"
	"github.com/cooltech/alex/internal/retrieval"
	"github.com/cooltech/alex/internal/safety"
	"github.com/cooltech/alex/internal/session"
)

type BuildResult struct {
	Config    config.Config
	API       *httpapi.Server
	Assistant *assistant.Assistant
	Metrics   *observability.Metrics

	// EngineMode is the completion backend actually in use after auto
	// resolution ("openai", "mock", or "openai+mock" when the hosted
	// engine is chained to the local fallback).
	EngineMode string

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	transcripts, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("transcript store init failed: %w", err)
	}

	eng, engineMode, err := engine.NewEngine(engine.Config{
		Mode:       cfg.EngineMode,
		APIKey:     cfg.EngineAPIKey,
		BaseURL:    cfg.EngineBaseURL,
		Model:      cfg.EngineModel,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		_ = transcripts.Close()
		return nil, fmt.Errorf("completion engine init failed: %w", err)
	}

	index, err := retrieval.NewLexicalIndex(catalog.Chunks(cfg.ChunkSize, cfg.ChunkOverlap))
	if err != nil {
		_ = transcripts.Close()
		return nil, fmt.Errorf("catalog index init failed: %w", err)
	}

	pii := safety.NewRegexDetector()
	toxicity := safety.NewToxicityScorer(cfg.ToxicityScorerURL)

	a := assistant.New(assistant.Params{
		Registry:   session.NewRegistry(),
		Transcript: transcripts,
		Generator: assistant.NewGenerator(assistant.GeneratorParams{
			Retriever:   index,
			Engine:      eng,
			TopK:        cfg.RetrieverTopK,
			MaxTokens:   cfg.MaxTokens,
			Temperature: float32(cfg.Temperature),
			Timeout:     cfg.EngineTimeout,
		}),
		Classifier:         intent.NewClassifier(),
		Input:              safety.NewValidator(safety.PolicyBlock, pii, toxicity, cfg.ToxicityThreshold),
		Output:             safety.NewValidator(safety.PolicyFix, pii, toxicity, cfg.ToxicityThreshold),
		Metrics:            metrics,
		StarterProbability: cfg.StarterProbability,
	})

	api := httpapi.New(cfg, a, metrics, index.Len())

	cleanup := func() error {
		var errs []string
		if err := transcripts.Close(); err != nil {
			errs = append(errs, err.Error())
		}
		if len(errs) > 0 {
			return fmt.Errorf("%s", strings.Join(errs, "; "))
		}
		return nil
	}

	return &BuildResult{
		Config:     cfg,
		API:        api,
		Assistant:  a,
		Metrics:    metrics,
		EngineMode: engineMode,
		Cleanup:    cleanup,
	}, nil
}
