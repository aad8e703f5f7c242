package memory

import (
	"context"
	"time"
)

// Turn roles as stored in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TurnRecord stores a single user or assistant conversational turn.
type TurnRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	PIIRedacted bool      `json:"pii_redacted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists and retrieves session transcripts.
type Store interface {
	SaveTurn(ctx context.Context, record TurnRecord) error
	// SaveExchange persists the records atomically: either all of them land
	// in the transcript or none do.
	SaveExchange(ctx context.Context, records ...TurnRecord) error
	Transcript(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
	ClearSession(ctx context.Context, sessionID string) error
	Close() error
}
