package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runIDPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func newPortal(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("query") {
		case "Jan Novak":
			w.Write([]byte(`[{"firstName":"Jan","lastName":"Novak","userId":123,"clubAbbrev":"PKHK"},{"firstName":"Jan","lastName":"Novak","userId":"77","clubAbbrev":"SKP"}]`))
		default:
			w.Write([]byte(`{"results":[]}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setEnv(t *testing.T, portalURL, dbName string) {
	t.Setenv("SEARCH_BASE_URL", portalURL)
	t.Setenv("REQUEST_INTERVAL", "1ms")
	t.Setenv("DB_NAME", dbName)
	t.Setenv("TURSO_PRIMARY_URL", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("GCP_PROJECT", "")
	t.Setenv("METRICS_FILE", "")
	t.Setenv("XLSX_OUTPUT", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_WritesMembersAndRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, newPortal(t).URL, filepath.Join(dir, "history.db"))
	input := filepath.Join(dir, "names_list.txt")
	output := filepath.Join(dir, "pkhk_members.txt")
	require.NoError(t, os.WriteFile(input, []byte("Jan Novak\nPetr Svoboda\n"), 0o644))

	_, err := execute(t, input, output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Jan Novak\n123\n", string(content))

	list, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, list, "PKHK")
	assert.Contains(t, list, output)

	runID := runIDPattern.FindString(list)
	require.NotEmpty(t, runID, "history should list the run id")
	show, err := execute(t, "history", "show", runID)
	require.NoError(t, err)
	assert.Contains(t, show, "Run "+runID)
	assert.Contains(t, show, "Matches:  1, 1 written, 0 skipped")
	assert.Contains(t, show, "Jan Novak")
	assert.Contains(t, show, "123")

	t.Cleanup(func() { historyJSON = false })
	raw, err := execute(t, "history", "--json")
	require.NoError(t, err)
	var runs []history.RunRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "PKHK", runs[0].Club)
	assert.Equal(t, 2, runs[0].Names)
	assert.Equal(t, 1, runs[0].Written)
	assert.Contains(t, raw, `"output_path": "`+output+`"`)
}

func TestRootCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, newPortal(t).URL, "")

	_, err := execute(t, filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"))

	assert.ErrorIs(t, err, roster.ErrInputNotFound)
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
}

func TestRootCommand_TooManyArguments(t *testing.T) {
	setEnv(t, newPortal(t).URL, "")

	_, err := execute(t, "a.txt", "b.txt", "c.txt")

	assert.Error(t, err)
}

func TestSearchCommand_MarksClubMembers(t *testing.T) {
	setEnv(t, newPortal(t).URL, "")

	out, err := execute(t, "search", "Jan", "Novak")

	require.NoError(t, err)
	var member, other string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "PKHK"):
			member = line
		case strings.Contains(line, "SKP"):
			other = line
		}
	}
	assert.Contains(t, member, "✓")
	assert.Contains(t, member, "123")
	assert.NotContains(t, other, "✓")
	assert.Contains(t, other, "77")
	assert.Equal(t, 1, strings.Count(out, "✓"))
}

func TestSearchCommand_NoResults(t *testing.T) {
	setEnv(t, newPortal(t).URL, "")

	out, err := execute(t, "search", "Eva", "Maria", "Dvorakova")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestHistoryCommand_Disabled(t *testing.T) {
	setEnv(t, newPortal(t).URL, "")

	_, err := execute(t, "history")

	assert.ErrorIs(t, err, errHistoryDisabled)
}
