package metrics

// Metrics defines the interface for collecting run metrics.
// This decouples the runner from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLookups()
	IncLookupFailures()
	AddMatches(n int)
	IncSkippedRecords()
	ObserveLookupDuration(seconds float64)
	SetRunDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
}
