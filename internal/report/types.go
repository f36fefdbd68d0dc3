package report

import (
	"time"

	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// RunSummary describes one finished batch run.
type RunSummary struct {
	RunID      string
	Club       string
	InputPath  string
	OutputPath string
	DryRun     bool

	Names         int
	Lookups       int
	FailedLookups int

	// Matches holds every record that matched the club, in lookup order.
	Matches []swimming.Person
	// Members holds the matches that passed validation and were written.
	Members []swimming.Person
	Written int
	Skipped int

	StartedAt time.Time
	Duration  time.Duration
}

// MatchCount returns the number of matched records.
func (s *RunSummary) MatchCount() int {
	return len(s.Matches)
}
