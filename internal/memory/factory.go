package memory

import (
	"context"
	"strings"
)

// NewStore creates a postgres-backed transcript store when a database URL is
// configured, otherwise an in-memory one.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
