package notifier

import (
	"sync"

	"github.com/mauv0809/pkhk-scout/internal/report"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendRunSummaryFunc func(summary *report.RunSummary, dryRun bool) error

	// Call records
	SendRunSummaryCalls []SendRunSummaryCall
}

// SendRunSummaryCall holds the arguments for a call to SendRunSummary.
type SendRunSummaryCall struct {
	Summary *report.RunSummary
	DryRun  bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRunSummaryCalls = nil
}

func (m *Mock) SendRunSummary(summary *report.RunSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRunSummaryCalls = append(m.SendRunSummaryCalls, SendRunSummaryCall{Summary: summary, DryRun: dryRun})
	if m.SendRunSummaryFunc != nil {
		return m.SendRunSummaryFunc(summary, dryRun)
	}
	return nil
}
