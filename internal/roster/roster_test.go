package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestParseLine(t *testing.T) {
	entry, ok := ParseLine("Jan Novak")
	require.True(t, ok)
	assert.Equal(t, NameEntry{GivenNames: "Jan", Surname: "Novak"}, entry)

	entry, ok = ParseLine("  Anna   Marie\tDvořáková ")
	require.True(t, ok)
	assert.Equal(t, "Anna Marie", entry.GivenNames, "given names are joined by single spaces")
	assert.Equal(t, "Dvořáková", entry.Surname)
	assert.Equal(t, "Anna Marie Dvořáková", entry.Query())

	_, ok = ParseLine("Madonna")
	assert.False(t, ok)
}

func TestReadNames_PreservesOrderAndSkipsBadLines(t *testing.T) {
	logs := captureLogs(t)
	path := writeFile(t, "\uFEFFJan Novak\n\n   \nCher\nPetr Svoboda\r\nJana Marie Kralova\n")

	entries, err := ReadNames(path)
	require.NoError(t, err)

	assert.Equal(t, []NameEntry{
		{GivenNames: "Jan", Surname: "Novak"},
		{GivenNames: "Petr", Surname: "Svoboda"},
		{GivenNames: "Jana Marie", Surname: "Kralova"},
	}, entries)
	assert.Equal(t, 1, strings.Count(logs.String(), "Could not parse line"), "exactly one warning for the single-token line")
	assert.Contains(t, logs.String(), "Cher")
}

func TestReadNames_EmptyFile(t *testing.T) {
	entries, err := ReadNames(writeFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadNames_MissingFile(t *testing.T) {
	_, err := ReadNames(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestReadNames_Directory(t *testing.T) {
	_, err := ReadNames(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputUnreadable)
}

func TestParse_OverlongLineDoesNotDropOtherNames(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	input := "Jan Novak\n" + long + " Long\nEva Dvorakova"

	entries, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, NameEntry{GivenNames: "Jan", Surname: "Novak"}, entries[0])
	assert.Equal(t, long, entries[1].GivenNames)
	assert.Equal(t, "Long", entries[1].Surname)
	assert.Equal(t, NameEntry{GivenNames: "Eva", Surname: "Dvorakova"}, entries[2])
}
