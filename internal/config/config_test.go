package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":9090" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":9090")
	}
	if cfg.EngineMode != "auto" {
		t.Fatalf("EngineMode = %q, want %q", cfg.EngineMode, "auto")
	}
	if cfg.MaxTokens != 1024 {
		t.Fatalf("MaxTokens = %d, want 1024", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.8 {
		t.Fatalf("Temperature = %v, want 0.8", cfg.Temperature)
	}
	if cfg.RetrieverTopK != 4 {
		t.Fatalf("RetrieverTopK = %d, want 4", cfg.RetrieverTopK)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Fatalf("chunking = %d/%d, want 1000/200", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.ToxicityThreshold != 0.5 {
		t.Fatalf("ToxicityThreshold = %v, want 0.5", cfg.ToxicityThreshold)
	}
	if cfg.StarterProbability != 0.3 {
		t.Fatalf("StarterProbability = %v, want 0.3", cfg.StarterProbability)
	}
	if cfg.MaxMessageChars != 1000 {
		t.Fatalf("MaxMessageChars = %d, want 1000", cfg.MaxMessageChars)
	}
	if cfg.EngineTimeout != 30*time.Second {
		t.Fatalf("EngineTimeout = %v, want 30s", cfg.EngineTimeout)
	}
}

func TestLoadGroqKeyFallback(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EngineAPIKey != "gsk_test" {
		t.Fatalf("EngineAPIKey = %q, want groq fallback", cfg.EngineAPIKey)
	}
}

func TestLoadExplicitKeyWinsOverGroq(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("ENGINE_API_KEY", "primary")
	t.Setenv("GROQ_API_KEY", "fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EngineAPIKey != "primary" {
		t.Fatalf("EngineAPIKey = %q, want primary", cfg.EngineAPIKey)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"negative tokens", "ENGINE_MAX_TOKENS", "-5"},
		{"temperature out of range", "ENGINE_TEMPERATURE", "3.5"},
		{"zero top k", "RETRIEVER_TOP_K", "0"},
		{"overlap exceeds chunk", "CHUNK_OVERLAP", "1000"},
		{"threshold too high", "TOXICITY_THRESHOLD", "1.5"},
		{"probability too high", "STARTER_PROBABILITY", "2"},
		{"unparsable duration", "ENGINE_TIMEOUT", "soon"},
		{"unparsable bool", "APP_ALLOW_ANY_ORIGIN", "maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setCoreEnvEmpty(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() should reject %s=%s", tc.key, tc.value)
			}
		})
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"ENGINE_MODE",
		"ENGINE_API_KEY",
		"ENGINE_BASE_URL",
		"ENGINE_MODEL",
		"ENGINE_TIMEOUT",
		"ENGINE_MAX_RETRIES",
		"ENGINE_MAX_TOKENS",
		"ENGINE_TEMPERATURE",
		"GROQ_API_KEY",
		"RETRIEVER_TOP_K",
		"CHUNK_SIZE",
		"CHUNK_OVERLAP",
		"TOXICITY_THRESHOLD",
		"TOXICITY_SCORER_URL",
		"STARTER_PROBABILITY",
		"MAX_MESSAGE_CHARS",
		"DATABASE_URL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
