package runner

import (
	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/metrics"
	"github.com/mauv0809/pkhk-scout/internal/notifier"
	"github.com/mauv0809/pkhk-scout/internal/pubsub"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// Options tunes a run.
type Options struct {
	// Club is the abbreviation matched against each record's clubAbbrev.
	Club string
	// XLSXOutput, when set, also writes the members to an Excel workbook.
	XLSXOutput string
	// MetricsFile, when set, receives the run metrics in text format.
	MetricsFile string
	DryRun      bool
}

// Runner executes the batch lookup of a name list.
type Runner struct {
	client   swimming.SearchClient
	metrics  metrics.Metrics
	store    history.Store
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	opts     Options
}

// textfileWriter is implemented by metrics backends that can dump themselves
// to disk.
type textfileWriter interface {
	WriteTextfile(path string) error
}
