package history

import (
	"sync"

	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// Mock is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	RecordRunFunc     func(summary *report.RunSummary) error
	ListRunsFunc      func(limit int) ([]RunRecord, error)
	GetRunFunc        func(runID string) (*RunRecord, error)
	GetRunMembersFunc func(runID string) ([]swimming.Person, error)

	RecordRunCalls []*report.RunSummary
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) RecordRun(summary *report.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordRunCalls = append(m.RecordRunCalls, summary)
	if m.RecordRunFunc != nil {
		return m.RecordRunFunc(summary)
	}
	return nil
}

func (m *Mock) ListRuns(limit int) ([]RunRecord, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(limit)
	}
	return []RunRecord{}, nil
}

func (m *Mock) GetRun(runID string) (*RunRecord, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(runID)
	}
	return nil, ErrRunNotFound
}

func (m *Mock) GetRunMembers(runID string) ([]swimming.Person, error) {
	if m.GetRunMembersFunc != nil {
		return m.GetRunMembersFunc(runID)
	}
	return []swimming.Person{}, nil
}
