package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cooltech/alex/internal/variation"
)

var ErrNotFound = errors.New("session not found")

// Session tracks per-conversation bookkeeping. The transcript itself lives
// in the memory store; the registry only holds counters and timestamps.
type Session struct {
	ID             string    `json:"session_id"`
	TurnCount      int       `json:"message_count"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type entry struct {
	// turnLock serializes message processing within one session so
	// concurrent requests for the same conversation cannot interleave.
	turnLock sync.Mutex
	sess     *Session
	declines *variation.Store
}

// Registry owns the live session table. Different sessions proceed in
// parallel; turns within one session run one at a time.
type Registry struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	newDeclines func() *variation.Store
}

func NewRegistry() *Registry {
	return &Registry{
		entries:     make(map[string]*entry),
		newDeclines: variation.NewStore,
	}
}

// NewSeededRegistry gives every session a deterministically seeded
// variation store. Used by tests that assert on template selection.
func NewSeededRegistry(seed int64) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		newDeclines: func() *variation.Store {
			return variation.NewSeededStore(seed)
		},
	}
}

// GetOrCreate returns the session with the given ID, creating it first if
// needed. An empty ID always creates a fresh session.
func (r *Registry) GetOrCreate(sessionID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID != "" {
		if e, ok := r.entries[sessionID]; ok {
			return clone(e.sess)
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := time.Now().UTC()
	e := &entry{
		sess:     &Session{ID: sessionID, CreatedAt: now, LastActivityAt: now},
		declines: r.newDeclines(),
	}
	r.entries[sessionID] = e
	return clone(e.sess)
}

func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(e.sess), nil
}

// List returns a snapshot of all sessions. Reading never mutates state, so
// repeated calls observe identical results absent other traffic.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, clone(e.sess))
	}
	return out
}

// WithTurn runs fn under the session's turn lock. fn receives the live
// session record and the session's decline-variation store; mutations to
// the session made inside fn are retained.
func (r *Registry) WithTurn(sessionID string, fn func(s *Session, declines *variation.Store) error) error {
	r.mu.RLock()
	e, ok := r.entries[sessionID]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.turnLock.Lock()
	defer e.turnLock.Unlock()
	return fn(e.sess, e.declines)
}

// Clear resets a session's counters and response history while keeping the
// session itself alive.
func (r *Registry) Clear(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return ErrNotFound
	}
	e.sess.TurnCount = 0
	e.sess.LastActivityAt = time.Now().UTC()
	e.declines.Clear()
	return nil
}

// Remove drops a session from the registry entirely.
func (r *Registry) Remove(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.entries, sessionID)
	return nil
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func clone(s *Session) *Session {
	c := *s
	return &c
}
