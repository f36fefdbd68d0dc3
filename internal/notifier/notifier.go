package notifier

import "github.com/mauv0809/pkhk-scout/internal/report"

// Notifier defines a high-level interface for announcing finished runs.
// This decouples the runner from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendRunSummary(summary *report.RunSummary, dryRun bool) error
}
