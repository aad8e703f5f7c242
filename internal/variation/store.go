package variation

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cooltech/alex/internal/safety"
)

const (
	maxHistory  = 10
	avoidWindow = 5
)

// Store selects decline templates while biasing away from recently used
// ones. The bias is soft: with a small pool and a short window a repeat is
// still possible, just unlikely. One store serves one conversation; Clear
// resets the window together with the session.
type Store struct {
	mu      sync.Mutex
	rng     *rand.Rand
	history []string
}

func NewStore() *Store {
	return NewSeededStore(time.Now().UnixNano())
}

// NewSeededStore fixes the random source so tests can assert selection
// behavior without flakiness.
func NewSeededStore(seed int64) *Store {
	return &Store{rng: rand.New(rand.NewSource(seed))}
}

// SelectDecline returns a template for the category, avoiding (softly) the
// strings chosen in the last few selections. Unknown categories fall back to
// the off-topic pool.
func (s *Store) SelectDecline(category safety.Category) string {
	pool, ok := declinePools[category]
	if !ok {
		pool = declinePools[safety.CategoryOffTopic]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.history
	if len(recent) > avoidWindow {
		recent = recent[len(recent)-avoidWindow:]
	}
	candidates := make([]string, 0, len(pool))
	for _, tmpl := range pool {
		if !contains(recent, tmpl) {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	selected := candidates[s.rng.Intn(len(candidates))]
	s.history = append(s.history, selected)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	return selected
}

// SelectStarter picks a conversation opener. Starters are short enough that
// repeats are harmless, so no history is kept for them.
func (s *Store) SelectStarter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return starters[s.rng.Intn(len(starters))]
}

// Clear wipes the anti-repeat window.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// HistoryLen reports the current rolling-history length.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
