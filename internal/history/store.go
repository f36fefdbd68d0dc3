package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// New creates a new history Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// RecordRun stores the run and its written members in one transaction.
func (s *store) RecordRun(summary *report.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, club, input_path, output_path, names, lookups, failed_lookups, matches, written, skipped, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Club, summary.InputPath, summary.OutputPath,
		summary.Names, summary.Lookups, summary.FailedLookups, summary.MatchCount(),
		summary.Written, summary.Skipped, summary.StartedAt.Unix(), summary.Duration.Milliseconds(),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_members (run_id, position, first_name, last_name, user_id, club)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, p := range summary.Members {
		if _, err := stmt.Exec(summary.RunID, i, p.FirstName, p.LastName, p.UserID.String(), p.ClubAbbrev); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert member %q: %w", p.FullName(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Recorded run", "runID", summary.RunID, "members", len(summary.Members))
	return nil
}

// ListRuns returns the most recent runs first, at most limit of them.
func (s *store) ListRuns(limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, club, input_path, output_path, names, lookups, failed_lookups, matches, written, skipped, started_at, duration_ms
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			log.Error("Failed to scan run row", "error", err)
			continue
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by id.
func (s *store) GetRun(runID string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, club, input_path, output_path, names, lookups, failed_lookups, matches, written, skipped, started_at, duration_ms
		FROM runs
		WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// GetRunMembers returns the members written by a run, in output order.
func (s *store) GetRunMembers(runID string) ([]swimming.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT first_name, last_name, user_id, club
		FROM run_members
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []swimming.Person
	for rows.Next() {
		var p swimming.Person
		var userID string
		if err := rows.Scan(&p.FirstName, &p.LastName, &userID, &p.ClubAbbrev); err != nil {
			return nil, err
		}
		p.UserID = swimming.UserID(userID)
		members = append(members, p)
	}
	return members, rows.Err()
}

// scanRun is a helper function to scan a single run row.
func scanRun(scanner interface{ Scan(...any) error }) (*RunRecord, error) {
	var run RunRecord
	var startedAt, durationMs int64
	err := scanner.Scan(
		&run.ID, &run.Club, &run.InputPath, &run.OutputPath,
		&run.Names, &run.Lookups, &run.FailedLookups, &run.Matches,
		&run.Written, &run.Skipped, &startedAt, &durationMs,
	)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.Unix(startedAt, 0)
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return &run, nil
}
