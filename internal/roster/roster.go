package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const utf8BOM = "\uFEFF"

// ReadNames reads the name list at path. Lines with fewer than two tokens are
// skipped with a warning.
func ReadNames(path string) ([]NameEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	return entries, nil
}

// Parse reads name entries from r, one per line. Lines of any length are
// accepted.
func Parse(r io.Reader) ([]NameEntry, error) {
	var entries []NameEntry
	reader := bufio.NewReader(r)
	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}
		if line = strings.TrimSpace(line); line != "" {
			if entry, ok := ParseLine(line); ok {
				entries = append(entries, entry)
			} else {
				log.Warn("Could not parse line", "line", line)
			}
		}
		if err != nil {
			return entries, nil
		}
	}
}

// ParseLine splits a line into given names and surname. The last token is the
// surname; it reports false when the line has fewer than two tokens.
func ParseLine(line string) (NameEntry, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return NameEntry{}, false
	}
	return NameEntry{
		GivenNames: strings.Join(parts[:len(parts)-1], " "),
		Surname:    parts[len(parts)-1],
	}, true
}
