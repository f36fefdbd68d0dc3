package swimming

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the SearchClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	SearchFunc func(ctx context.Context, query string) ([]Person, error)

	SearchCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Search(ctx context.Context, query string) ([]Person, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	fn := m.SearchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	return []Person{}, nil
}

// Calls returns a copy of the recorded queries.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SearchCalls...)
}
