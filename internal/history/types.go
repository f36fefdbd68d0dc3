package history

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// store handles all database operations for the run history.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// RunRecord is a persisted run.
type RunRecord struct {
	ID            string        `json:"id"`
	Club          string        `json:"club"`
	InputPath     string        `json:"input_path"`
	OutputPath    string        `json:"output_path"`
	Names         int           `json:"names"`
	Lookups       int           `json:"lookups"`
	FailedLookups int           `json:"failed_lookups"`
	Matches       int           `json:"matches"`
	Written       int           `json:"written"`
	Skipped       int           `json:"skipped"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration_ns"`
}
