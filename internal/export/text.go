package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
)

// WriteResults writes people to path, replacing any existing file. Each person
// takes two lines: the full name, then the user id. Records with missing
// fields are logged and skipped.
func WriteResults(people []swimming.Person, path string) (WriteResult, error) {
	valid, skipped := Valid(people)
	result := WriteResult{Skipped: skipped}
	if len(valid) == 0 {
		return result, ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return result, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range valid {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", p.FullName(), p.UserID); err != nil {
			return result, fmt.Errorf("failed to write output file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return result, fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return result, fmt.Errorf("failed to close output file: %w", err)
	}

	result.Written = len(valid)
	return result, nil
}

// Valid returns the records that pass validation and the number skipped.
func Valid(people []swimming.Person) ([]swimming.Person, int) {
	valid := make([]swimming.Person, 0, len(people))
	skipped := 0
	for i, p := range people {
		if err := p.Validate(); err != nil {
			log.Warn("Skipping malformed record", "index", i, "name", p.FullName(), "error", err)
			skipped++
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}
