package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/cooltech/alex/internal/catalog"
)

func TestNewLexicalIndexEmptyCorpus(t *testing.T) {
	if _, err := NewLexicalIndex(nil); err != ErrEmptyCorpus {
		t.Fatalf("err = %v, want ErrEmptyCorpus", err)
	}
	if _, err := NewLexicalIndex([]string{"  ", "..."}); err != ErrEmptyCorpus {
		t.Fatalf("err = %v, want ErrEmptyCorpus for unusable text", err)
	}
}

func TestRetrieveRanksRelevantChunkFirst(t *testing.T) {
	idx, err := NewLexicalIndex([]string{
		"SmartChill 600L IoT Enabled: WiFi connectivity, internal camera, voice control.",
		"MiniChill 90L Bar Refrigerator: compact design, glass door option.",
		"CommercialPro 800L: heavy-duty compressor, stainless steel interior.",
	})
	if err != nil {
		t.Fatalf("NewLexicalIndex() error = %v", err)
	}

	got, err := idx.Retrieve(context.Background(), "do you have a smart fridge with wifi?", 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("no results")
	}
	if want := "SmartChill"; !strings.Contains(got[0].Text, want) {
		t.Fatalf("top chunk = %q, want it to mention %s", got[0].Text, want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not sorted by score: %v", got)
		}
	}
}

func TestRetrieveHonorsK(t *testing.T) {
	idx, err := NewLexicalIndex(catalog.Chunks(400, 80))
	if err != nil {
		t.Fatalf("NewLexicalIndex() error = %v", err)
	}
	got, err := idx.Retrieve(context.Background(), "refrigerator capacity for a family", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) > 3 {
		t.Fatalf("got %d chunks, want at most 3", len(got))
	}
}

func TestRetrieveNoOverlapReturnsNothing(t *testing.T) {
	idx, err := NewLexicalIndex([]string{"stainless steel interior"})
	if err != nil {
		t.Fatalf("NewLexicalIndex() error = %v", err)
	}
	got, err := idx.Retrieve(context.Background(), "zzzz qqqq", 4)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}
