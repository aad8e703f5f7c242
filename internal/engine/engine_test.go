package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewEngineModes(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		wantType string
		wantMode string
		wantErr  bool
	}{
		{"auto without key", Config{Mode: "auto"}, "*engine.MockEngine", "mock", false},
		{"auto with key", Config{Mode: "auto", APIKey: "k"}, "*engine.FallbackEngine", "openai+mock", false},
		{"explicit openai", Config{Mode: "openai", APIKey: "k"}, "*engine.OpenAIEngine", "openai", false},
		{"explicit mock", Config{Mode: "mock"}, "*engine.MockEngine", "mock", false},
		{"openai without key", Config{Mode: "openai"}, "", "", true},
		{"unknown mode", Config{Mode: "quantum"}, "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, mode, err := NewEngine(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if got := typeName(e); got != tc.wantType {
				t.Fatalf("engine type = %s, want %s", got, tc.wantType)
			}
			if mode != tc.wantMode {
				t.Fatalf("resolved mode = %q, want %q", mode, tc.wantMode)
			}
		})
	}
}

func typeName(e Engine) string {
	switch e.(type) {
	case *MockEngine:
		return "*engine.MockEngine"
	case *OpenAIEngine:
		return "*engine.OpenAIEngine"
	case *FallbackEngine:
		return "*engine.FallbackEngine"
	default:
		return "unknown"
	}
}

func TestMockEngineEchoesQuery(t *testing.T) {
	e := NewMockEngine()
	got, err := e.Complete(context.Background(), CompletionRequest{Prompt: "persona\ncontext\nCustomer question: what fits a dorm?"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !strings.Contains(got, "what fits a dorm?") {
		t.Fatalf("mock answer %q should echo the final prompt line", got)
	}
	if e.CallCount() != 1 {
		t.Fatalf("CallCount() = %d, want 1", e.CallCount())
	}
}

func TestMockEngineHonorsCancellation(t *testing.T) {
	e := NewMockEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Complete(ctx, CompletionRequest{Prompt: "hi"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFallbackEngineUsesSecondaryOnError(t *testing.T) {
	primary := NewMockEngine()
	primary.Reply = func(CompletionRequest) (string, error) {
		return "", errors.New("engine down")
	}
	secondary := NewMockEngine()
	secondary.Reply = func(CompletionRequest) (string, error) {
		return "from secondary", nil
	}

	fb := NewFallbackEngine(primary, secondary)
	got, err := fb.Complete(context.Background(), CompletionRequest{Prompt: "q"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "from secondary" {
		t.Fatalf("answer = %q, want from secondary", got)
	}
}

func TestFallbackEngineDoesNotMaskCancellation(t *testing.T) {
	primary := NewMockEngine()
	primary.Reply = func(CompletionRequest) (string, error) {
		return "", context.DeadlineExceeded
	}
	secondary := NewMockEngine()

	fb := NewFallbackEngine(primary, secondary)
	if _, err := fb.Complete(context.Background(), CompletionRequest{Prompt: "q"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
	if secondary.CallCount() != 0 {
		t.Fatalf("secondary ran %d times, want 0", secondary.CallCount())
	}
}

func TestFallbackEngineBothFail(t *testing.T) {
	primary := NewMockEngine()
	primary.Reply = func(CompletionRequest) (string, error) {
		return "", errors.New("primary boom")
	}
	secondary := NewMockEngine()
	secondary.Reply = func(CompletionRequest) (string, error) {
		return "", errors.New("secondary boom")
	}

	fb := NewFallbackEngine(primary, secondary)
	_, err := fb.Complete(context.Background(), CompletionRequest{Prompt: "q"})
	if err == nil {
		t.Fatalf("expected combined error")
	}
	if !strings.Contains(err.Error(), "primary") || !strings.Contains(err.Error(), "secondary") {
		t.Fatalf("error should mention both attempts: %v", err)
	}
}
