package retrieval

import "context"

// MockRetriever returns canned chunks and records calls. Test helper.
type MockRetriever struct {
	Chunks []Chunk
	Err    error
	Calls  int
}

func (m *MockRetriever) Retrieve(_ context.Context, _ string, k int) ([]Chunk, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.Chunks
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
