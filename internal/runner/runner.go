package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pkhk-scout/internal/export"
	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/metrics"
	"github.com/mauv0809/pkhk-scout/internal/notifier"
	"github.com/mauv0809/pkhk-scout/internal/pubsub"
	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/mauv0809/pkhk-scout/internal/roster"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// New creates a new Runner. History, notifications and publishing are off
// until enabled with the With* methods.
func New(client swimming.SearchClient, metrics metrics.Metrics, opts Options) *Runner {
	return &Runner{
		client:  client,
		metrics: metrics,
		opts:    opts,
	}
}

// WithHistory records every finished run in store.
func (r *Runner) WithHistory(store history.Store) *Runner {
	r.store = store
	return r
}

// WithNotifier announces every finished run through n.
func (r *Runner) WithNotifier(n notifier.Notifier) *Runner {
	r.notifier = n
	return r
}

// WithPubSub publishes one event per written member through p.
func (r *Runner) WithPubSub(p pubsub.PubSubClient) *Runner {
	r.pubsub = p
	return r
}

// Run looks up every name of inputPath and writes the club members found to
// outputPath. A failed lookup only skips that name. The returned error is
// non-nil when the input cannot be read, the output cannot be written or ctx
// is canceled; the summary is returned in every case.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string) (*report.RunSummary, error) {
	club := r.opts.Club
	summary := &report.RunSummary{
		RunID:      uuid.NewString(),
		Club:       club,
		InputPath:  inputPath,
		OutputPath: outputPath,
		DryRun:     r.opts.DryRun,
		StartedAt:  time.Now(),
	}
	log.Info(fmt.Sprintf("Looking for %s members", club), "runID", summary.RunID, "input", inputPath)

	names, err := roster.ReadNames(inputPath)
	if err != nil {
		log.Error("Failed to read names", "error", err)
		return summary, err
	}
	summary.Names = len(names)
	if len(names) == 0 {
		log.Info("No names to process.")
		return summary, nil
	}
	log.Info("Found names to search for", "count", len(names))

	for _, entry := range names {
		if err := ctx.Err(); err != nil {
			log.Warn("Run interrupted, nothing written", "processed", summary.Lookups, "total", len(names))
			return summary, err
		}

		summary.Lookups++
		results, ok := r.searchPerson(ctx, entry)
		if !ok {
			summary.FailedLookups++
			log.Info(fmt.Sprintf("✗ No results found for %s", entry))
			continue
		}
		if len(results) == 0 {
			log.Info(fmt.Sprintf("✗ No results found for %s", entry))
			continue
		}

		matches := swimming.FilterByClub(results, club)
		if len(matches) == 0 {
			log.Info(fmt.Sprintf("✗ No %s members found for %s", club, entry), "results", len(results))
			continue
		}
		log.Info(fmt.Sprintf("✓ Found %d %s member(s) for %s", len(matches), club, entry))
		r.metrics.AddMatches(len(matches))
		summary.Matches = append(summary.Matches, matches...)
	}
	if err := ctx.Err(); err != nil {
		log.Warn("Run interrupted, nothing written", "processed", summary.Lookups, "total", len(names))
		return summary, err
	}

	if len(summary.Matches) == 0 {
		log.Info(fmt.Sprintf("No %s members found in the search results.", club))
		r.finish(summary)
		return summary, nil
	}

	log.Info(fmt.Sprintf("Total %s members found: %d", club, len(summary.Matches)))
	err = r.writeResults(ctx, summary)
	r.finish(summary)
	return summary, err
}

// searchPerson performs one lookup. Errors are logged, never returned: the
// boolean reports whether a result list was obtained.
func (r *Runner) searchPerson(ctx context.Context, entry roster.NameEntry) ([]swimming.Person, bool) {
	query := entry.Query()
	log.Info(fmt.Sprintf("Searching for: %s", query))
	r.metrics.IncLookups()

	start := time.Now()
	people, err := r.client.Search(ctx, query)
	r.metrics.ObserveLookupDuration(time.Since(start).Seconds())
	if err != nil {
		r.metrics.IncLookupFailures()
		if errors.Is(err, swimming.ErrDecode) {
			log.Error(fmt.Sprintf("Error parsing JSON response for %s", query), "error", err)
		} else {
			log.Error(fmt.Sprintf("Error searching for %s", query), "error", err)
		}
		return nil, false
	}
	return people, true
}

// writeResults writes the text output and, when configured, the workbook and
// the member events.
func (r *Runner) writeResults(ctx context.Context, summary *report.RunSummary) error {
	valid, skipped := export.Valid(summary.Matches)
	summary.Members = valid
	summary.Skipped = skipped
	for i := 0; i < skipped; i++ {
		r.metrics.IncSkippedRecords()
	}
	if len(valid) == 0 {
		log.Warn("No complete records to write, output file not created", "skipped", skipped)
		return nil
	}

	if r.opts.DryRun {
		log.Info("[Dry Run] Would write results", "path", summary.OutputPath, "records", len(valid))
		if r.opts.XLSXOutput != "" {
			log.Info("[Dry Run] Would write workbook", "path", r.opts.XLSXOutput, "records", len(valid))
		}
		return nil
	}

	result, err := export.WriteResults(valid, summary.OutputPath)
	if err != nil {
		log.Error(fmt.Sprintf("Error writing to file %s", summary.OutputPath), "error", err)
		return err
	}
	summary.Written = result.Written
	log.Info(fmt.Sprintf("Results written to %s", summary.OutputPath), "records", result.Written)

	if r.opts.XLSXOutput != "" {
		if _, err := export.WriteWorkbook(valid, r.opts.XLSXOutput); err != nil {
			log.Error("Failed to write workbook", "path", r.opts.XLSXOutput, "error", err)
		} else {
			log.Info(fmt.Sprintf("Workbook written to %s", r.opts.XLSXOutput))
		}
	}

	r.publishMembers(ctx, summary)
	return nil
}

func (r *Runner) publishMembers(ctx context.Context, summary *report.RunSummary) {
	if r.pubsub == nil {
		return
	}
	failed := 0
	for _, p := range summary.Members {
		event := pubsub.MemberEvent{
			RunID:     summary.RunID,
			Club:      summary.Club,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			UserID:    p.UserID.String(),
			FoundAt:   summary.StartedAt.Unix(),
		}
		if err := r.pubsub.SendMessage(ctx, pubsub.EventMemberFound, event); err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Error("Failed to publish some member events", "failed", failed, "total", len(summary.Members))
		return
	}
	log.Info("Published member events", "count", len(summary.Members))
}

// finish records, announces and measures a completed run. Failures here are
// logged only.
func (r *Runner) finish(summary *report.RunSummary) {
	summary.Duration = time.Since(summary.StartedAt)
	r.metrics.SetRunDuration(summary.Duration.Seconds())

	if r.store != nil {
		if r.opts.DryRun {
			log.Info("[Dry Run] Would record run in history", "runID", summary.RunID)
		} else if err := r.store.RecordRun(summary); err != nil {
			log.Error("Failed to record run in history", "runID", summary.RunID, "error", err)
		}
	}

	if r.notifier != nil {
		if err := r.notifier.SendRunSummary(summary, r.opts.DryRun); err != nil {
			log.Error("Failed to send run summary", "runID", summary.RunID, "error", err)
		}
	}

	if r.opts.MetricsFile != "" {
		tw, ok := r.metrics.(textfileWriter)
		switch {
		case !ok:
			log.Warn("Metrics backend cannot write a textfile", "path", r.opts.MetricsFile)
		case r.opts.DryRun:
			log.Info("[Dry Run] Would write metrics textfile", "path", r.opts.MetricsFile)
		default:
			if err := tw.WriteTextfile(r.opts.MetricsFile); err != nil {
				log.Error("Failed to write metrics", "error", err)
			}
		}
	}
	log.Debug("Run finished", "runID", summary.RunID, "duration", summary.Duration)
}
