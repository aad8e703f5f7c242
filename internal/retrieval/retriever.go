package retrieval

import "context"

// Chunk is one ranked grounding snippet. Results live only for the duration
// of a single generation call and are never persisted.
type Chunk struct {
	Text  string
	Score float64
}

// Retriever answers top-k relevance queries over the grounding corpus.
// Implementations must be safe for concurrent use: the index is built once
// and read-only afterwards.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Chunk, error)
}

// DefaultTopK is the number of context chunks fed to the generation prompt.
const DefaultTopK = 4
