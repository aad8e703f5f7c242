package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the sales assistant service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	EngineMode    string
	EngineAPIKey  string
	EngineBaseURL string
	EngineModel   string
	EngineTimeout time.Duration
	MaxRetries    int
	MaxTokens     int
	Temperature   float64

	RetrieverTopK int
	ChunkSize     int
	ChunkOverlap  int

	ToxicityThreshold  float64
	ToxicityScorerURL  string
	StarterProbability float64
	MaxMessageChars    int

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:           envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:   envOrDefault("APP_METRICS_NAMESPACE", "alex"),
		AllowAnyOrigin:     false,
		EngineMode:         envOrDefault("ENGINE_MODE", "auto"),
		EngineAPIKey:       stringsTrimSpace("ENGINE_API_KEY"),
		EngineBaseURL:      stringsTrimSpace("ENGINE_BASE_URL"),
		EngineModel:        stringsTrimSpace("ENGINE_MODEL"),
		DatabaseURL:        stringsTrimSpace("DATABASE_URL"),
		ToxicityScorerURL:  stringsTrimSpace("TOXICITY_SCORER_URL"),
		ShutdownTimeout:    15 * time.Second,
		EngineTimeout:      30 * time.Second,
		MaxRetries:         2,
		MaxTokens:          1024,
		Temperature:        0.8,
		RetrieverTopK:      4,
		ChunkSize:          1000,
		ChunkOverlap:       200,
		ToxicityThreshold:  0.5,
		StarterProbability: 0.3,
		MaxMessageChars:    1000,
	}
	// The catalog stack predates this service; keep honoring its key name.
	if cfg.EngineAPIKey == "" {
		cfg.EngineAPIKey = stringsTrimSpace("GROQ_API_KEY")
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.EngineTimeout, err = durationFromEnv("ENGINE_TIMEOUT", cfg.EngineTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxRetries, err = intFromEnv("ENGINE_MAX_RETRIES", cfg.MaxRetries)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxTokens, err = intFromEnv("ENGINE_MAX_TOKENS", cfg.MaxTokens)
	if err != nil {
		return Config{}, err
	}
	cfg.Temperature, err = floatFromEnv("ENGINE_TEMPERATURE", cfg.Temperature)
	if err != nil {
		return Config{}, err
	}
	cfg.RetrieverTopK, err = intFromEnv("RETRIEVER_TOP_K", cfg.RetrieverTopK)
	if err != nil {
		return Config{}, err
	}
	cfg.ChunkSize, err = intFromEnv("CHUNK_SIZE", cfg.ChunkSize)
	if err != nil {
		return Config{}, err
	}
	cfg.ChunkOverlap, err = intFromEnv("CHUNK_OVERLAP", cfg.ChunkOverlap)
	if err != nil {
		return Config{}, err
	}
	cfg.ToxicityThreshold, err = floatFromEnv("TOXICITY_THRESHOLD", cfg.ToxicityThreshold)
	if err != nil {
		return Config{}, err
	}
	cfg.StarterProbability, err = floatFromEnv("STARTER_PROBABILITY", cfg.StarterProbability)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxMessageChars, err = intFromEnv("MAX_MESSAGE_CHARS", cfg.MaxMessageChars)
	if err != nil {
		return Config{}, err
	}

	if cfg.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("ENGINE_MAX_TOKENS must be positive")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return Config{}, fmt.Errorf("ENGINE_TEMPERATURE must be in [0, 2]")
	}
	if cfg.RetrieverTopK <= 0 {
		return Config{}, fmt.Errorf("RETRIEVER_TOP_K must be positive")
	}
	if cfg.ChunkSize <= 0 {
		return Config{}, fmt.Errorf("CHUNK_SIZE must be positive")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return Config{}, fmt.Errorf("CHUNK_OVERLAP must be non-negative and smaller than CHUNK_SIZE")
	}
	if cfg.ToxicityThreshold <= 0 || cfg.ToxicityThreshold > 1 {
		return Config{}, fmt.Errorf("TOXICITY_THRESHOLD must be in (0, 1]")
	}
	if cfg.StarterProbability < 0 || cfg.StarterProbability > 1 {
		return Config{}, fmt.Errorf("STARTER_PROBABILITY must be in [0, 1]")
	}
	if cfg.MaxMessageChars <= 0 {
		return Config{}, fmt.Errorf("MAX_MESSAGE_CHARS must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return trimSpace(os.Getenv(key))
}

func trimSpace(v string) string {
	for len(v) > 0 && (v[0] == ' ' || v[0] == '\n' || v[0] == '\t' || v[0] == '\r') {
		v = v[1:]
	}
	for len(v) > 0 {
		c := v[len(v)-1]
		if c == ' ' || c == '\n' || c == '\t' || c == '\r' {
			v = v[:len(v)-1]
			continue
		}
		break
	}
	return v
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
