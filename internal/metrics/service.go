package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Metrics = (*Service)(nil)

// NewService creates the run metrics on a dedicated registry.
func NewService() *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_lookups_total",
			Help: "The total number of person lookups sent to the results portal.",
		}),
		LookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_lookup_failures_total",
			Help: "The total number of lookups that failed with a transport, status or decode error.",
		}),
		Matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_matches_total",
			Help: "The total number of person records matching the target club.",
		}),
		SkippedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_skipped_records_total",
			Help: "The total number of matched records skipped because of missing fields.",
		}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pkhk_scout_lookup_duration_seconds",
			Help:    "The duration of individual lookups, throttle wait included.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RunDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pkhk_scout_run_duration_seconds",
			Help: "The duration of the last run in seconds.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pkhk_scout_last_run_timestamp_seconds",
			Help: "Unix time at which the last run finished.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pkhk_scout_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
	}

	s.registry.MustRegister(
		s.Lookups,
		s.LookupFailures,
		s.Matches,
		s.SkippedRecords,
		s.LookupDuration,
		s.RunDurationSeconds,
		s.LastRunTimestamp,
		s.SlackNotifSent,
		s.SlackNotifFailed,
	)

	return s
}

// Gatherer exposes the registry, mainly for tests.
func (s *Service) Gatherer() prometheus.Gatherer {
	return s.registry
}

func (s *Service) IncLookups() {
	s.Lookups.Inc()
}

func (s *Service) IncLookupFailures() {
	s.LookupFailures.Inc()
}

func (s *Service) AddMatches(n int) {
	s.Matches.Add(float64(n))
}

func (s *Service) IncSkippedRecords() {
	s.SkippedRecords.Inc()
}

func (s *Service) ObserveLookupDuration(seconds float64) {
	s.LookupDuration.Observe(seconds)
}

func (s *Service) SetRunDuration(seconds float64) {
	s.RunDurationSeconds.Set(seconds)
	s.LastRunTimestamp.SetToCurrentTime()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

// WriteTextfile writes all metrics in the text exposition format, for pickup
// by the node exporter textfile collector.
func (s *Service) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
