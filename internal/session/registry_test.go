package session

import (
	"sync"
	"testing"

	"github.com/cooltech/alex/internal/variation"
)

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()

	s := r.GetOrCreate("")
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}
	if s.TurnCount != 0 {
		t.Fatalf("new session TurnCount = %d, want 0", s.TurnCount)
	}

	again := r.GetOrCreate(s.ID)
	if again.ID != s.ID {
		t.Fatalf("GetOrCreate with existing ID returned %q, want %q", again.ID, s.ID)
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}

	named := r.GetOrCreate("custom-id")
	if named.ID != "custom-id" {
		t.Fatalf("session ID = %q, want custom-id", named.ID)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("missing"); err != ErrNotFound {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if err := r.Clear("missing"); err != ErrNotFound {
		t.Fatalf("Clear() error = %v, want ErrNotFound", err)
	}
	if err := r.Remove("missing"); err != ErrNotFound {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}
}

func TestRegistryWithTurnMutations(t *testing.T) {
	r := NewRegistry()
	s := r.GetOrCreate("")

	err := r.WithTurn(s.ID, func(live *Session, declines *variation.Store) error {
		live.TurnCount++
		return nil
	})
	if err != nil {
		t.Fatalf("WithTurn() error = %v", err)
	}

	got, err := r.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TurnCount != 1 {
		t.Fatalf("TurnCount = %d, want 1", got.TurnCount)
	}
}

func TestRegistryClearResetsState(t *testing.T) {
	r := NewRegistry()
	s := r.GetOrCreate("")

	_ = r.WithTurn(s.ID, func(live *Session, declines *variation.Store) error {
		live.TurnCount = 5
		declines.SelectDecline("off_topic")
		return nil
	})

	if err := r.Clear(s.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err := r.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TurnCount != 0 {
		t.Fatalf("TurnCount after clear = %d, want 0", got.TurnCount)
	}
	_ = r.WithTurn(s.ID, func(_ *Session, declines *variation.Store) error {
		if declines.HistoryLen() != 0 {
			t.Fatalf("decline history after clear = %d, want 0", declines.HistoryLen())
		}
		return nil
	})
}

func TestRegistryListSnapshot(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("a")
	r.GetOrCreate("b")

	first := r.List()
	second := r.List()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("List() lengths = %d, %d, want 2, 2", len(first), len(second))
	}

	// Mutating a snapshot must not leak into the registry.
	first[0].TurnCount = 99
	got, err := r.Get(first[0].ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TurnCount != 0 {
		t.Fatalf("snapshot mutation leaked, TurnCount = %d", got.TurnCount)
	}
}

func TestRegistryConcurrentTurnsSerialize(t *testing.T) {
	r := NewRegistry()
	s := r.GetOrCreate("")

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = r.WithTurn(s.ID, func(live *Session, _ *variation.Store) error {
				live.TurnCount++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := r.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TurnCount != n {
		t.Fatalf("TurnCount = %d, want %d", got.TurnCount, n)
	}
}
