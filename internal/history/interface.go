package history

import (
	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// Store defines the interface for the run history.
type Store interface {
	RecordRun(summary *report.RunSummary) error
	ListRuns(limit int) ([]RunRecord, error)
	GetRun(runID string) (*RunRecord, error)
	GetRunMembers(runID string) ([]swimming.Person, error)
}
