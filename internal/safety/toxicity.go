package safety

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// ToxicityScorer rates text on a [0,1] scale where 1 is maximally toxic.
type ToxicityScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// DefaultToxicityThreshold mirrors the sentence-level default used by the
// hosted validators this service was modeled on.
const DefaultToxicityThreshold = 0.5

var toxicLexicon = map[string]float64{
	"hate":     0.5,
	"stupid":   0.6,
	"idiot":    0.7,
	"moron":    0.7,
	"garbage":  0.5,
	"trash":    0.4,
	"useless":  0.4,
	"shut up":  0.7,
	"scam":     0.4,
	"damn":     0.3,
	"hell":     0.3,
	"terrible": 0.3,
	"awful":    0.3,
	"worst":    0.3,
	"kill":     0.8,
	"die":      0.6,
}

// LexiconScorer is the built-in degraded-mode scorer: a weighted term lookup
// evaluated per sentence, returning the worst sentence score. It never errors
// and needs no external service.
type LexiconScorer struct{}

func NewLexiconScorer() *LexiconScorer { return &LexiconScorer{} }

func (s *LexiconScorer) Score(_ context.Context, text string) (float64, error) {
	worst := 0.0
	for _, sentence := range splitSentences(text) {
		if score := scoreSentence(sentence); score > worst {
			worst = score
		}
	}
	return worst, nil
}

func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func scoreSentence(sentence string) float64 {
	tokens := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(tokens) == 0 {
		return 0
	}
	// Pad with spaces so single terms and multi-word phrases both match
	// whole tokens only; "die" must not fire inside "diet".
	padded := " " + strings.Join(tokens, " ") + " "

	score := 0.0
	for term, weight := range toxicLexicon {
		if strings.Contains(padded, " "+term+" ") {
			// Repeated or stacked insults escalate, capped at 1.
			score += weight
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}

// RemoteScorer delegates scoring to an external classifier endpoint that
// accepts {"text": ...} and returns {"score": ...}.
type RemoteScorer struct {
	url    string
	client *http.Client
}

func NewRemoteScorer(url string) *RemoteScorer {
	return &RemoteScorer{
		url: strings.TrimSpace(url),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *RemoteScorer) Score(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send score request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return 0, fmt.Errorf("toxicity scorer status %d: %s", res.StatusCode, string(body))
	}

	var out struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}
	if out.Score < 0 || out.Score > 1 {
		return 0, fmt.Errorf("toxicity scorer returned out-of-range score %v", out.Score)
	}
	return out.Score, nil
}

// NewToxicityScorer probes for a configured remote classifier and falls back
// to the built-in lexicon scorer when none is available.
func NewToxicityScorer(remoteURL string) ToxicityScorer {
	if strings.TrimSpace(remoteURL) != "" {
		return NewRemoteScorer(remoteURL)
	}
	return NewLexiconScorer()
}
