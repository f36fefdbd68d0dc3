package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	lookups          int
	lookupFailures   int
	matches          int
	skippedRecords   int
	lookupDurations  []float64
	runDuration      float64
	slackNotifSent   int
	slackNotifFailed int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		lookupDurations: make([]float64, 0),
	}
}

func (m *Mock) IncLookups() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
}

func (m *Mock) IncLookupFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupFailures++
}

func (m *Mock) AddMatches(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches += n
}

func (m *Mock) IncSkippedRecords() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skippedRecords++
}

func (m *Mock) ObserveLookupDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupDurations = append(m.lookupDurations, seconds)
}

func (m *Mock) SetRunDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runDuration = seconds
}

// Lookups returns the number of times IncLookups was called.
func (m *Mock) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// LookupFailures returns the number of times IncLookupFailures was called.
func (m *Mock) LookupFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookupFailures
}

// Matches returns the sum passed to AddMatches.
func (m *Mock) Matches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matches
}

// SkippedRecords returns the number of times IncSkippedRecords was called.
func (m *Mock) SkippedRecords() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skippedRecords
}

// LookupDurations returns the observed lookup durations.
func (m *Mock) LookupDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.lookupDurations...)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// RunDuration returns the last value passed to SetRunDuration.
func (m *Mock) RunDuration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runDuration
}
