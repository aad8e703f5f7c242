package memory

import (
	"context"
	"testing"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	turns := []TurnRecord{
		{SessionID: "s1", Role: RoleUser, Content: "do you have a compact fridge?"},
		{SessionID: "s1", Role: RoleAssistant, Content: "The CoolMini 90 fits small spaces."},
		{SessionID: "s2", Role: RoleUser, Content: "other session"},
	}
	for _, tr := range turns {
		if err := s.SaveTurn(ctx, tr); err != nil {
			t.Fatalf("SaveTurn() error = %v", err)
		}
	}

	got, err := s.Transcript(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(got))
	}
	if got[0].Role != RoleUser || got[1].Role != RoleAssistant {
		t.Fatalf("transcript out of order: %+v", got)
	}
	for _, r := range got {
		if r.ID == "" {
			t.Fatalf("record should get an assigned ID")
		}
		if r.CreatedAt.IsZero() {
			t.Fatalf("record should get a timestamp")
		}
	}
}

func TestInMemoryStoreSaveExchange(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	err := s.SaveExchange(ctx,
		TurnRecord{SessionID: "s1", Role: RoleUser, Content: "what fits a garage?"},
		TurnRecord{SessionID: "s1", Role: RoleAssistant, Content: "The FrostGuard 500L handles wide temperature ranges."},
	)
	if err != nil {
		t.Fatalf("SaveExchange() error = %v", err)
	}

	got, err := s.Transcript(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(got))
	}
	if got[0].Role != RoleUser || got[1].Role != RoleAssistant {
		t.Fatalf("exchange out of order: %+v", got)
	}
	for _, r := range got {
		if r.ID == "" || r.CreatedAt.IsZero() {
			t.Fatalf("record missing assigned fields: %+v", r)
		}
	}
}

func TestInMemoryStoreTranscriptLimit(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		if err := s.SaveTurn(ctx, TurnRecord{SessionID: "s1", Role: RoleUser, Content: "m"}); err != nil {
			t.Fatalf("SaveTurn() error = %v", err)
		}
	}

	got, err := s.Transcript(ctx, "s1", 4)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(got))
	}
}

func TestInMemoryStoreClearSession(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	if err := s.SaveTurn(ctx, TurnRecord{SessionID: "s1", Role: RoleUser, Content: "hello"}); err != nil {
		t.Fatalf("SaveTurn() error = %v", err)
	}
	if err := s.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	got, err := s.Transcript(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("transcript after clear = %d records, want 0", len(got))
	}
}

func TestInMemoryStoreUnknownSession(t *testing.T) {
	s := NewInMemoryStore()
	got, err := s.Transcript(context.Background(), "nope", 0)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unknown session returned %d records", len(got))
	}
}
