package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics of a run.
type Service struct {
	registry *prometheus.Registry

	Lookups            prometheus.Counter
	LookupFailures     prometheus.Counter
	Matches            prometheus.Counter
	SkippedRecords     prometheus.Counter
	LookupDuration     prometheus.Histogram
	RunDurationSeconds prometheus.Gauge
	LastRunTimestamp   prometheus.Gauge
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
}
